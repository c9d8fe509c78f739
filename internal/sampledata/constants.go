package sampledata

// Role pools. Excluded roles are dropped by the default filter.
var (
	externalRoles = []string{"co-investigator", "mentor", "advisor", "evaluator", "collaborator", "consultant"}
	piRoles       = []string{"pi", "co-pi", "former pi", "former co-pi"}
	internalRoles = []string{"internal advisor", "internal evaluator", "semi-internal mentor"}
	otherTypes    = []string{"dc", "ps", "ws"}
)

// Row mix, in percent.
const (
	pctOtherType = 15
	pctPI        = 15
	pctInternal  = 10

	pctMan       = 45
	pctWoman     = 40
	pctNonBinary = 5 // the rest have no demographic row

	pctOutOfRange = 5 // awards placed in CohortMax+1

	firstStartYear = 2012
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0644
)
