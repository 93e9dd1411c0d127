package worldstate

import (
	"sort"

	"github.com/talonreach/dominion/internal/calendar"
	"github.com/talonreach/dominion/internal/fixedpoint"
	"github.com/talonreach/dominion/internal/ids"
)

// RelationType is the kind of bilateral relationship between two countries.
type RelationType uint8

const (
	RelationAlliance RelationType = iota
	RelationRival
)

// TagPair is a sorted pair of tags, used as a map key so (a,b) and (b,a)
// collide.
type TagPair struct {
	A, B ids.Tag
}

// NewTagPair returns a sorted TagPair for t1, t2.
func NewTagPair(t1, t2 ids.Tag) TagPair {
	if t1 <= t2 {
		return TagPair{A: t1, B: t2}
	}
	return TagPair{A: t2, B: t1}
}

// War is an active conflict between two coalitions of countries.
type War struct {
	ID         ids.WarID
	Name       string
	Attackers  []ids.Tag
	Defenders  []ids.Tag
	StartDate  calendar.Date

	AttackerScore fixedpoint.Fixed // [-100, 100]
	DefenderScore fixedpoint.Fixed

	PendingPeaceOffer bool
}

// InvolvesCountry reports whether tag is a combatant in w.
func (w *War) InvolvesCountry(tag ids.Tag) bool {
	for _, a := range w.Attackers {
		if a == tag {
			return true
		}
	}
	for _, d := range w.Defenders {
		if d == tag {
			return true
		}
	}
	return false
}

// AreOpposed reports whether a and b are on opposite sides of w.
func (w *War) AreOpposed(a, b ids.Tag) bool {
	aAttacker, aDefender := false, false
	bAttacker, bDefender := false, false
	for _, t := range w.Attackers {
		if t == a {
			aAttacker = true
		}
		if t == b {
			bAttacker = true
		}
	}
	for _, t := range w.Defenders {
		if t == a {
			aDefender = true
		}
		if t == b {
			bDefender = true
		}
	}
	return (aAttacker && bDefender) || (aDefender && bAttacker)
}

// SubjectType describes the rules of a dependency relationship.
type SubjectType struct {
	ID                 ids.SubjectTypeID
	Name               string
	IsVoluntary        bool
	JoinsOverlordsWars bool
}

// IsTributary reports whether this subject type is a tributary (voluntary,
// does not join the overlord's wars).
func (t SubjectType) IsTributary() bool {
	return t.IsVoluntary && !t.JoinsOverlordsWars
}

// SubjectRelationship is a dependency relationship, keyed by subject tag.
type SubjectRelationship struct {
	Overlord            ids.Tag
	Subject             ids.Tag
	SubjectType         ids.SubjectTypeID
	StartDate           calendar.Date
	LibertyDesire       fixedpoint.Fixed
	IntegrationProgress fixedpoint.Fixed
	Integrating         bool
}

// Coalition is a grouping formed against a target due to aggressive
// expansion.
type Coalition struct {
	Target     ids.Tag
	Members    map[ids.Tag]bool
	FormedDate calendar.Date
}

// SortedMembers returns coalition members in lexicographic order.
func (c *Coalition) SortedMembers() []ids.Tag {
	out := make([]ids.Tag, 0, len(c.Members))
	for t := range c.Members {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DiplomacyState holds every cross-country relationship.
type DiplomacyState struct {
	Relations      map[TagPair]RelationType
	Wars           map[ids.WarID]*War
	MilitaryAccess map[TagPair]bool // not written by GrantAccess nor read by HasAccess
	// accessDirected holds the grants GrantAccess records, keyed by
	// directedPair{Grantor, Receiver} since TagPair is unordered.
	accessDirected map[directedPair]bool

	Subjects map[ids.Tag]*SubjectRelationship // subject tag -> relationship
	Coalitions map[ids.Tag]*Coalition          // target tag -> coalition

	SubjectTypes map[ids.SubjectTypeID]SubjectType
}

type directedPair struct {
	Grantor, Receiver ids.Tag
}

// NewDiplomacyState returns an empty diplomacy state.
func NewDiplomacyState() *DiplomacyState {
	return &DiplomacyState{
		Relations:      make(map[TagPair]RelationType),
		Wars:           make(map[ids.WarID]*War),
		MilitaryAccess: make(map[TagPair]bool),
		accessDirected: make(map[directedPair]bool),
		Subjects:       make(map[ids.Tag]*SubjectRelationship),
		Coalitions:     make(map[ids.Tag]*Coalition),
		SubjectTypes:   make(map[ids.SubjectTypeID]SubjectType),
	}
}

// GrantAccess records that grantor allows receiver's armies through its
// territory.
func (d *DiplomacyState) GrantAccess(grantor, receiver ids.Tag) {
	d.accessDirected[directedPair{Grantor: grantor, Receiver: receiver}] = true
}

// HasAccess reports whether receiver currently has access through grantor.
func (d *DiplomacyState) HasAccess(grantor, receiver ids.Tag) bool {
	return d.accessDirected[directedPair{Grantor: grantor, Receiver: receiver}]
}

// AreAtWar reports whether a and b are on opposing sides of any war.
func (d *DiplomacyState) AreAtWar(a, b ids.Tag) bool {
	for _, wid := range d.SortedWarIDs() {
		if d.Wars[wid].AreOpposed(a, b) {
			return true
		}
	}
	return false
}

// SortedWarIDs returns war ids in ascending order, for deterministic
// iteration.
func (d *DiplomacyState) SortedWarIDs() []ids.WarID {
	out := make([]ids.WarID, 0, len(d.Wars))
	for id := range d.Wars {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WarsForCountry returns every war tag is a combatant in, in ascending id
// order.
func (d *DiplomacyState) WarsForCountry(tag ids.Tag) []*War {
	var out []*War
	for _, id := range d.SortedWarIDs() {
		if d.Wars[id].InvolvesCountry(tag) {
			out = append(out, d.Wars[id])
		}
	}
	return out
}

// SortedSubjectTags returns subject tags in lexicographic order.
func (d *DiplomacyState) SortedSubjectTags() []ids.Tag {
	out := make([]ids.Tag, 0, len(d.Subjects))
	for t := range d.Subjects {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SortedCoalitionTargets returns coalition target tags in lexicographic order.
func (d *DiplomacyState) SortedCoalitionTargets() []ids.Tag {
	out := make([]ids.Tag, 0, len(d.Coalitions))
	for t := range d.Coalitions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
