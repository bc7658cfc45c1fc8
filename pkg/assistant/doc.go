// Package assistant bridges freeform user text to the external generation
// service while keeping a faithful conversation transcript.
//
// The bridge enforces a single-outstanding-request discipline: while one
// external call is in flight, further sends are dropped, not queued. Each
// accepted send appends the user turn optimistically, replays the entire
// prior transcript to the generator in original order, and always appends
// exactly one assistant turn afterward - the reply on success, a fixed
// apology on any failure. External failures never escape this boundary.
//
// The external call carries a timeout and can be canceled, so a hung
// service cannot leave the bridge busy forever.
package assistant
