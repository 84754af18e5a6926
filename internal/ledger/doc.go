// Package ledger implements the tamper-evident audit trail. Every
// compliance event is appended as an entry whose digest covers the
// previous entry's digest, forming a hash chain anchored at a fixed
// genesis digest. Entries are serialized with RFC 8785 canonical JSON
// so a digest is reproducible from the stored record alone, and the
// whole chain can be verified from genesis to head.
//
// Storage is pluggable behind the Log interface. The sqlite-backed log
// is the durable production store; the memory log serves tests and
// ephemeral runs.
package ledger
