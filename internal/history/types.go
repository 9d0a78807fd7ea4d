// Package history implements the on-disk history database: a shared
// master bank, one append-only session bank per live process, and the
// locking/reap/compaction protocol that keeps them consistent across
// processes editing the same command line concurrently.
package history

import "fmt"

// Bank discriminates which file a LineID's offset is relative to.
type Bank uint8

const (
	BankMaster Bank = iota
	BankSession
)

func (b Bank) String() string {
	if b == BankSession {
		return "session"
	}
	return "master"
}

// offsetBits is the width of the byte-offset field packed into a LineID;
// offsets at or past this cap are unrecoverable (the entry can still be
// read sequentially but can never again be addressed for removal).
const offsetBits = 29

// MaxOffset is the largest byte offset a LineID can address.
const MaxOffset = 1<<offsetBits - 1

const (
	offsetMask = 1<<offsetBits - 1
	bankShift  = offsetBits
	bankMask   = 0x3
	liveShift  = offsetBits + 2
)

// LineID identifies one history entry by (bank, byte-offset) plus a
// live/deleted bit, packed into 32 bits per the on-disk format's line-ID
// contract.
type LineID uint32

// NewLineID packs a bank, byte offset and liveness flag into a LineID.
// Offsets past MaxOffset are clamped to MaxOffset (unrecoverable, per the
// on-disk contract) rather than silently wrapping.
func NewLineID(bank Bank, offset int, live bool) LineID {
	if offset < 0 {
		offset = 0
	}
	if offset > MaxOffset {
		offset = MaxOffset
	}
	id := LineID(offset & offsetMask)
	id |= LineID(bank&bankMask) << bankShift
	if live {
		id |= 1 << liveShift
	}
	return id
}

func (id LineID) Bank() Bank    { return Bank((id >> bankShift) & bankMask) }
func (id LineID) Offset() int   { return int(id & offsetMask) }
func (id LineID) Live() bool    { return id&(1<<liveShift) != 0 }
func (id LineID) Unrecoverable() bool { return id.Offset() == MaxOffset }

func (id LineID) String() string {
	return fmt.Sprintf("%s:%d", id.Bank(), id.Offset())
}

// WithLive returns a copy of id with its live bit set to live.
func (id LineID) WithLive(live bool) LineID {
	return NewLineID(id.Bank(), id.Offset(), live)
}

// Entry is one history line as returned by iteration: its identity, text,
// optional preceding timestamp, and soft-delete state.
type Entry struct {
	ID        LineID
	Text      string
	Timestamp int64 // unix seconds, 0 if the entry has no timestamp line
	Deleted   bool
}

// DupeMode controls what Add does when the same text already exists.
type DupeMode int

const (
	// DupeAdd always appends, even if the text is already present.
	DupeAdd DupeMode = iota
	// DupeIgnore drops the add silently if any occurrence exists.
	DupeIgnore
	// DupeErasePrev soft-deletes prior occurrences before appending.
	DupeErasePrev
)

func (m DupeMode) String() string {
	switch m {
	case DupeAdd:
		return "add"
	case DupeIgnore:
		return "ignore"
	case DupeErasePrev:
		return "erase_prev"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so DupeMode can be
// decoded directly out of a TOML/YAML settings file.
func (m *DupeMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "add":
		*m = DupeAdd
	case "ignore":
		*m = DupeIgnore
	case "erase_prev":
		*m = DupeErasePrev
	default:
		return fmt.Errorf("history: unknown dupe_mode value %q", text)
	}
	return nil
}

func (m DupeMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ExpandStatus reports the outcome of history-designator expansion.
type ExpandStatus int

const (
	ExpandUnchanged ExpandStatus = iota
	ExpandExpanded
	ExpandError
	ExpandDisplayReedit
)
