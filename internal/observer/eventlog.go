package observer

import (
	"encoding/json"
	"io"

	"github.com/talonreach/dominion/internal/ids"
)

// EventKind names the category of a logged event, for offline timeline
// reconstruction per spec.md §6.
type EventKind string

const (
	EventOwnershipChange EventKind = "ownership_change"
	EventWarDeclared     EventKind = "war_declared"
	EventPeace           EventKind = "peace"
	EventSiegeStarted    EventKind = "siege_started"
	EventSiegeComplete   EventKind = "siege_complete"
)

// Event is one line of the event log.
type Event struct {
	Tick        uint64    `json:"tick"`
	Date        string    `json:"date"`
	Kind        EventKind `json:"kind"`
	Province    *ids.ProvinceID `json:"province,omitempty"`
	War         *ids.WarID      `json:"war,omitempty"`
	From        ids.Tag   `json:"from,omitempty"`
	To          ids.Tag   `json:"to,omitempty"`
	Description string    `json:"description"`
}

// EventLogObserver diffs consecutive snapshots and writes one line of JSON
// per detected ownership change, war declaration/peace, and siege
// start/completion. Battles and annexations are not logged as events of
// their own. It is stateful
// (keeps the previous tick's owners/wars/sieges to diff against) and is
// therefore not safe for concurrent use; the tick stepper only ever calls
// observers sequentially, so this is never a problem in practice.
type EventLogObserver struct {
	enc       *json.Encoder
	frequency uint32

	prevOwners map[ids.ProvinceID]ids.Tag
	prevWars   map[ids.WarID]bool
	prevSieges map[ids.ProvinceID]ids.Tag
	seen       bool
}

// NewEventLogObserver writes line-delimited JSON events to w as they occur.
func NewEventLogObserver(w io.Writer) *EventLogObserver {
	return &EventLogObserver{
		enc:        json.NewEncoder(w),
		frequency:  1,
		prevOwners: make(map[ids.ProvinceID]ids.Tag),
		prevWars:   make(map[ids.WarID]bool),
		prevSieges: make(map[ids.ProvinceID]ids.Tag),
	}
}

func (o *EventLogObserver) Name() string     { return "eventlog" }
func (o *EventLogObserver) Frequency() uint32 { return o.frequency }
func (o *EventLogObserver) NeedsInputs() bool { return false }

func (o *EventLogObserver) Notify(snap Snapshot) error {
	w := snap.State
	date := w.Date.String()

	if o.seen {
		for _, pid := range w.SortedProvinceIDs() {
			p := w.Provinces[pid]
			prevOwner, had := o.prevOwners[pid]
			if !p.HasOwner() || (had && prevOwner == p.Owner) {
				continue
			}
			kind := EventOwnershipChange
			if besieger, wasSieged := o.prevSieges[pid]; wasSieged && besieger == p.Owner {
				kind = EventSiegeComplete
			}
			pidCopy := pid
			if err := o.enc.Encode(Event{
				Tick: snap.Tick, Date: date, Kind: kind, Province: &pidCopy,
				From: prevOwner, To: p.Owner,
				Description: eventDescription(kind, prevOwner, p.Owner, pid),
			}); err != nil {
				return err
			}
		}

		for _, wid := range w.Diplomacy.SortedWarIDs() {
			if o.prevWars[wid] {
				continue
			}
			widCopy := wid
			if err := o.enc.Encode(Event{
				Tick: snap.Tick, Date: date, Kind: EventWarDeclared, War: &widCopy,
				Description: "war declared",
			}); err != nil {
				return err
			}
		}
		for wid := range o.prevWars {
			if _, stillAtWar := w.Diplomacy.Wars[wid]; !stillAtWar {
				widCopy := wid
				if err := o.enc.Encode(Event{
					Tick: snap.Tick, Date: date, Kind: EventPeace, War: &widCopy,
					Description: "war ended",
				}); err != nil {
					return err
				}
			}
		}

		for _, pid := range w.SortedProvinceIDs() {
			p := w.Provinces[pid]
			_, wasSieged := o.prevSieges[pid]
			if p.Siege != nil && !wasSieged {
				pidCopy := pid
				if err := o.enc.Encode(Event{
					Tick: snap.Tick, Date: date, Kind: EventSiegeStarted, Province: &pidCopy,
					To:          p.Siege.Besieger,
					Description: "siege started",
				}); err != nil {
					return err
				}
			}
		}
	}

	o.prevOwners = make(map[ids.ProvinceID]ids.Tag, len(w.Provinces))
	o.prevSieges = make(map[ids.ProvinceID]ids.Tag)
	for _, pid := range w.SortedProvinceIDs() {
		p := w.Provinces[pid]
		o.prevOwners[pid] = p.Owner
		if p.Siege != nil {
			o.prevSieges[pid] = p.Siege.Besieger
		}
	}
	o.prevWars = make(map[ids.WarID]bool, len(w.Diplomacy.Wars))
	for wid := range w.Diplomacy.Wars {
		o.prevWars[wid] = true
	}
	o.seen = true
	return nil
}

func eventDescription(kind EventKind, from, to ids.Tag, pid ids.ProvinceID) string {
	switch kind {
	case EventSiegeComplete:
		return "province captured by siege"
	default:
		if from == "" {
			return "province colonized/settled"
		}
		return "province changed hands"
	}
}
