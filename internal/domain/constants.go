package domain

// Age tiers used for the per-tier offering competition. Membership is
// decided by substring match on the class name (case-sensitive).
const (
	TierChildren    = "CRIANCAS"
	TierAdolescents = "ADOLESCENTES"
	TierAdults      = "ADULTOS"
)

// Class-name markers per tier. Adults is the catch-all for anything the
// first two lists do not match.
var (
	ChildrenMarkers   = []string{"SOLDADOS", "OVELHINHAS"}
	AdolescentMarkers = []string{"ESTRELA", "LAEL", "ÁGAPE"}
)

// UnknownClassName is shown when a registration references a class that
// no longer resolves.
const UnknownClassName = "Unknown Class"

// SettingAllowRegistrations is the single system-wide write gate. When the
// stored value is false (or the row cannot be read) every registration
// submit is rejected.
const SettingAllowRegistrations = "allow_registrations"

const RoleAdmin = "ADMIN"

// MagazineInfo is one line of the editorial magazine breakdown printed on
// the daily report. The titles are fixed publishing-house material, not
// derived from live data.
type MagazineInfo struct {
	Tier  string `json:"tier"`
	Title string `json:"title"`
}

var MagazineBreakdown = []MagazineInfo{
	{Tier: TierChildren, Title: "Soldados de Cristo / Ovelhinhas"},
	{Tier: TierAdolescents, Title: "Estrela de Belém / Lael / Ágape"},
	{Tier: TierAdults, Title: "Lições Bíblicas - Adultos"},
}

// AttendanceHistoryLimit bounds how many past registrations the student
// history view reconstructs.
const AttendanceHistoryLimit = 20
