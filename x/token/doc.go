/*
Package token implements the fungible asset subsystem: a registry of
asset kinds ("mints") and per-owner holdings of a single asset each.

Holdings live at addresses derived from (owner, asset), so any party can
locate and fund the holding of any owner without a registry lookup.
A holding's recorded authority is the owner address; moving funds out of
a holding requires presenting a condition whose address equals that
authority. For wallet owners that condition comes from the authentication
layer; for escrow custody it is re-derived from the escrow inputs.
*/
package token
