package models

// Category is the closed set of resource categories the directory tracks.
// Values match the database enum and are stable across the API surface.
type Category string

const (
	CategoryFood              Category = "food"
	CategoryShelter           Category = "shelter"
	CategoryHealthcare        Category = "healthcare"
	CategoryWasteDisposal     Category = "waste_disposal"
	CategoryPropane           Category = "propane"
	CategoryCamping           Category = "camping"
	CategoryDayCenter         Category = "day_center"
	CategoryHygiene           Category = "hygiene"
	CategoryMailAddress       Category = "mail_address"
	CategoryWifiCharging      Category = "wifi_charging"
	CategoryCaseManagement    Category = "case_management"
	CategoryTransportation    Category = "transportation"
	CategoryAssistanceProgram Category = "assistance_program"
	CategoryLandOpportunity   Category = "land_opportunity"
	CategoryLegalAid          Category = "legal_aid"
	CategoryEmployment        Category = "employment"
	CategoryEducation         Category = "education"
	CategoryVeterans          Category = "veterans"
	CategoryOther             Category = "other"
)

// Categories lists every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryShelter, CategoryHealthcare, CategoryWasteDisposal,
		CategoryPropane, CategoryCamping, CategoryDayCenter, CategoryHygiene,
		CategoryMailAddress, CategoryWifiCharging, CategoryCaseManagement,
		CategoryTransportation, CategoryAssistanceProgram, CategoryLandOpportunity,
		CategoryLegalAid, CategoryEmployment, CategoryEducation, CategoryVeterans,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// AccessTier is an ordered privilege level gating both visibility and
// write actions: public < verified_user < trusted_verifier < admin.
type AccessTier string

const (
	TierPublic          AccessTier = "public"
	TierVerifiedUser    AccessTier = "verified_user"
	TierTrustedVerifier AccessTier = "trusted_verifier"
	TierAdmin           AccessTier = "admin"
)

// tierRank maps each tier to its position in the total order.
// Unknown tiers rank below public so they can never see anything extra.
var tierRank = map[AccessTier]int{
	TierPublic:          0,
	TierVerifiedUser:    1,
	TierTrustedVerifier: 2,
	TierAdmin:           3,
}

// Valid reports whether t is a known access tier.
func (t AccessTier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// AtLeast reports whether t is at or above the required tier in the
// total order. An unknown tier is never at least anything.
func (t AccessTier) AtLeast(required AccessTier) bool {
	rank, ok := tierRank[t]
	if !ok {
		return false
	}
	requiredRank, ok := tierRank[required]
	if !ok {
		return false
	}
	return rank >= requiredRank
}

// VerificationMethod describes how a verification event was performed.
type VerificationMethod string

const (
	MethodManualPhysical  VerificationMethod = "manual_physical"
	MethodManualPhone     VerificationMethod = "manual_phone"
	MethodAutomatedWeb    VerificationMethod = "automated_web"
	MethodCommunityReport VerificationMethod = "community_report"
	MethodPartnerVerified VerificationMethod = "partner_verified"
)

// Valid reports whether m is a known verification method.
func (m VerificationMethod) Valid() bool {
	switch m {
	case MethodManualPhysical, MethodManualPhone, MethodAutomatedWeb,
		MethodCommunityReport, MethodPartnerVerified:
		return true
	}
	return false
}

// ReportKind classifies what a community report is telling us about a
// resource.
type ReportKind string

const (
	ReportStillOpen       ReportKind = "still_open"
	ReportClosed          ReportKind = "closed"
	ReportChangedHours    ReportKind = "changed_hours"
	ReportChangedServices ReportKind = "changed_services"
	ReportNotHelpful      ReportKind = "not_helpful"
	ReportSafetyConcern   ReportKind = "safety_concern"
	ReportNewRestrictions ReportKind = "new_restrictions"
	ReportOther           ReportKind = "other"
)

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportStillOpen, ReportClosed, ReportChangedHours, ReportChangedServices,
		ReportNotHelpful, ReportSafetyConcern, ReportNewRestrictions, ReportOther:
		return true
	}
	return false
}

// ReportStatus tracks a community report through its one-directional
// review lifecycle: pending -> reviewed -> resolved | dismissed.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusReviewed  ReportStatus = "reviewed"
	StatusResolved  ReportStatus = "resolved"
	StatusDismissed ReportStatus = "dismissed"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal edge
// in the review lifecycle. Terminal states have no outgoing edges and a
// report never reverts to pending.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusReviewed
	case StatusReviewed:
		return next == StatusResolved || next == StatusDismissed
	}
	return false
}
