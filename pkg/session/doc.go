// Package session owns one exclusive connection to the mouse and
// serializes every command/response exchange over it.
//
// The protocol has no request identifiers: if two transactions were in
// flight on the same device, their responses would be indistinguishable.
// Transact is therefore a single serialization point: one complete,
// blocking send, settle delay, receive unit under a mutex. Any number
// of goroutines may call Transact; they queue rather than interleave.
//
// The settle delay between the two control transfers is required by the
// device firmware, which is not ready to answer immediately after a
// SET_REPORT. It is not an optimization knob.
//
// A timeout surfaces as a TransportError and is not retried: with no
// sequence numbers and no retransmission in the firmware protocol, a
// blind retry could re-apply a stateful write. Retries are left to the
// caller, which knows whether the command is idempotent. There is no
// cancellation primitive for an in-flight control transfer; cancelling
// the context takes effect between the transfer steps.
//
// Closing the session releases the interface claim so the kernel HID
// driver can reattach. Reattach problems are logged and swallowed, since
// the mouse keeps working under the host's default driver either way.
// The release runs on every exit path so the driver is never left
// permanently detached.
package session
