package nav

// Package nav models dashboard navigation as an explicit, serializable state
// object with a pure reducer per user intent. The machine is total: every
// intent has a defined result and invalid transitions leave state unchanged.

import (
	"github.com/vendosaas/vendo/internal/domain/auth"
)

// SectionID identifies a dashboard section. Ids are scoped to a role's menu
// set; the same literal ("dashboard") may appear in more than one set without
// the sets sharing anything.
type SectionID string

// Customer menu.
const (
	SectionDashboard     SectionID = "dashboard"
	SectionSubscriptions SectionID = "subscriptions"
	SectionMarketplace   SectionID = "marketplace"
	SectionBilling       SectionID = "billing"
	SectionProfile       SectionID = "profile"
)

// Tenant menu.
const (
	SectionManageSoftware SectionID = "manage-software"
	SectionOfferingPlans  SectionID = "offering-plans"
	SectionSubscriberList SectionID = "subscriber-list"
	SectionPlatformPlan   SectionID = "platform-plan"
	SectionBillingHistory SectionID = "billing-history"
	SectionSettings       SectionID = "settings"
)

// Tenant "My Activity" sub-menu, reachable only while the toggle is expanded.
const (
	SectionMySubscriptions SectionID = "my-subscriptions"
	SectionMyBilling       SectionID = "my-billing"
	SectionMyProfile       SectionID = "my-profile"
)

// DefaultSection is the entry point for every role.
const DefaultSection = SectionDashboard

// MenuSet declares the sections a role may navigate to. Nested sections are
// selectable only while the sub-menu is expanded.
type MenuSet struct {
	Top    []SectionID `json:"top"`
	Nested []SectionID `json:"nested,omitempty"`
}

// menus is keyed by role so overlapping ids never leak across roles.
var menus = map[auth.Role]MenuSet{
	auth.RoleCustomer: {
		Top: []SectionID{
			SectionDashboard,
			SectionSubscriptions,
			SectionMarketplace,
			SectionBilling,
			SectionProfile,
		},
	},
	auth.RoleTenant: {
		Top: []SectionID{
			SectionDashboard,
			SectionManageSoftware,
			SectionOfferingPlans,
			SectionMarketplace,
			SectionSubscriberList,
			SectionPlatformPlan,
			SectionBillingHistory,
			SectionSettings,
		},
		Nested: []SectionID{
			SectionMySubscriptions,
			SectionMyBilling,
			SectionMyProfile,
		},
	},
}

// MenuFor returns the menu set declared for a role. Guests (and unknown
// roles) have no menu.
func MenuFor(role auth.Role) (MenuSet, bool) {
	m, ok := menus[role]
	return m, ok
}

// contains reports membership of id in the slice.
func contains(ids []SectionID, id SectionID) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}

// State is the navigation state of one dashboard session. It is a plain
// value: reducers return a new State and never mutate the receiver.
type State struct {
	Role            auth.Role `json:"role"`
	ActiveSection   SectionID `json:"active_section"`
	SubMenuExpanded bool      `json:"sub_menu_expanded"`
}

// NewState returns the initial navigation state for a role: the default
// section with the sub-menu collapsed.
func NewState(role auth.Role) State {
	return State{Role: role, ActiveSection: DefaultSection}
}

// Intent is a discrete user action applied to State through Reduce.
type Intent interface {
	isIntent()
}

// SelectSection asks to make ID the active section.
type SelectSection struct {
	ID SectionID
}

// ToggleSubMenu flips the sub-menu expansion flag.
type ToggleSubMenu struct{}

func (SelectSection) isIntent() {}
func (ToggleSubMenu) isIntent() {}

// Reduce applies an intent to a state and returns the next state.
//
// SelectSection transitions only when the id belongs to the role's menu set:
// a top-level selection also collapses the sub-menu, a nested selection is
// honored only while the sub-menu is expanded and leaves it expanded. Any
// other id is a no-op. ToggleSubMenu flips the expansion flag and never
// changes the active section, even when the active section is nested.
func Reduce(s State, intent Intent) State {
	switch in := intent.(type) {
	case SelectSection:
		menu, ok := menus[s.Role]
		if !ok {
			return s
		}
		if contains(menu.Top, in.ID) {
			s.ActiveSection = in.ID
			s.SubMenuExpanded = false
			return s
		}
		if s.SubMenuExpanded && contains(menu.Nested, in.ID) {
			s.ActiveSection = in.ID
			return s
		}
		return s

	case ToggleSubMenu:
		s.SubMenuExpanded = !s.SubMenuExpanded
		return s
	}
	return s
}

// Sanitize repairs a state whose active section is not a member of the
// role's menu set (e.g., a stale stored value after a menu change) by
// falling back to the default section.
func Sanitize(s State) State {
	menu, ok := menus[s.Role]
	if !ok {
		return NewState(s.Role)
	}
	if contains(menu.Top, s.ActiveSection) || contains(menu.Nested, s.ActiveSection) {
		return s
	}
	s.ActiveSection = DefaultSection
	return s
}
