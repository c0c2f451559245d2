/*
Package observer propagates state changes from the model objects that own the state to the consumers that react
to it, without the model knowing who its consumers are.

A Subject (ValueSubject, ListSubject or MapSubject) owns one piece of state together with a registry of callbacks.
An Observer (ValueObserver, ListObserver or MapObserver) is the handle a consumer holds for one subscription: it keeps
its Subject alive and removes its callback from the Subject when it is closed. A Subject never references its
Observers, only their callbacks, so neither side can be left holding a stale reference to the other.

Every mutating call invokes all callbacks registered at the start of the call, synchronously, in subscription order.
The package is not safe for concurrent use: all Subjects and Observers of one subsystem must be used from a single
goroutine at a time, for example the one running an event loop.
*/
package observer
