/*
Package locker implements escrow with arbitration.

A depositor places an asset in the custody account of a new locker,
naming a receiver and a resolver. Either party may lock the locker to
mark a dispute. The locker ends exactly once, either released in full
to the receiver by the depositor or resolved by the resolver, who
splits the custodied value between depositor and receiver and keeps
a fee according to the configuration registered for it.
*/
package locker
