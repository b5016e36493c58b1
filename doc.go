/*
Package seedswap defines the common interfaces that tie the extensions of
this repository together: messages and transactions, handlers, key-value
storage, and the condition/address scheme used to exercise authority over
accounts without any stored key material.

The actual protocol logic lives in the extensions under x/, most notably
x/escrow (the conditional asset-swap escrow) and x/token (the fungible
asset registry and holdings it settles against).
*/
package seedswap
