// Package compliance is the lifecycle service tying the rule engines to
// the audit ledger. It assigns identities to detected violations,
// appends every record and status change as a ledger entry, and answers
// queries from an in-memory index rebuilt by replaying the ledger.
//
// The ledger is the source of truth: the service holds no state that
// cannot be reconstructed from entries, so reopening a durable ledger
// restores the full violation set.
package compliance
