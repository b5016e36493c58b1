/*
Package x contains the extensions of this repository along with the
authentication seam they share.

The x in the name is reminiscent of golang.org/x and means these are
extension packages built on top of the framework core, not part of it.
*/
package x
