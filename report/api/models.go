package api

import (
	"encoding/json"
	"time"
)

// Unit ...
type Unit string

// Units accepted by the reports API.
const (
	UnitStrings         Unit = "strings"
	UnitWords           Unit = "words"
	UnitChars           Unit = "chars"
	UnitCharsWithSpaces Unit = "chars_with_spaces"
)

// Currency ...
type Currency string

// Currencies accepted by the reports API.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyUAH Currency = "UAH"
	CurrencyPLN Currency = "PLN"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyCHF Currency = "CHF"
	CurrencyBRL Currency = "BRL"
	CurrencyINR Currency = "INR"
	CurrencyKRW Currency = "KRW"
	CurrencyRUB Currency = "RUB"
	CurrencySEK Currency = "SEK"
	CurrencyNOK Currency = "NOK"
	CurrencyDKK Currency = "DKK"
	CurrencyCZK Currency = "CZK"
	CurrencyTRY Currency = "TRY"
	CurrencyMXN Currency = "MXN"
)

// Format ...
type Format string

// Report file formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// MatchType ...
type MatchType string

// TM match buckets used by net rate schemes.
const (
	MatchTypePerfect MatchType = "perfect"
	MatchType100     MatchType = "100"
	MatchType99To95  MatchType = "99-95"
	MatchType94To90  MatchType = "94-90"
	MatchType89To80  MatchType = "89-80"
)

// LabelIncludeType ...
type LabelIncludeType string

// Label filters.
const (
	StringsWithLabel    LabelIncludeType = "strings_with_label"
	StringsWithoutLabel LabelIncludeType = "strings_without_label"
)

// ContributionMode ...
type ContributionMode string

// Contribution raw data modes.
const (
	ContributionModeTranslations ContributionMode = "translations"
	ContributionModeApprovals    ContributionMode = "approvals"
	ContributionModeVotes        ContributionMode = "votes"
)

// GroupBy ...
type GroupBy string

// Translation cost groupings.
const (
	GroupByUser     GroupBy = "user"
	GroupByLanguage GroupBy = "language"
)

// RateMode is the match mode a settings template rate applies to.
type RateMode string

// Settings template rate modes.
const (
	RateModeNoMatch  RateMode = "no_match"
	RateModeTMMatch  RateMode = "tm_match"
	RateModeApproval RateMode = "approval"
)

// ScopeType ...
type ScopeType string

// Report archive scopes.
const (
	ScopeTypeProject      ScopeType = "project"
	ScopeTypeGroup        ScopeType = "group"
	ScopeTypeOrganization ScopeType = "organization"
)

// JobStatus is the lifecycle state of a generation or export job.
type JobStatus string

// Job states. Finished and failed are terminal.
const (
	JobStatusCreated    JobStatus = "created"
	JobStatusInProgress JobStatus = "inProgress"
	JobStatusFinished   JobStatus = "finished"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether no further transition can happen.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusFinished || s == JobStatusFailed
}

// ReportStatus ...
type ReportStatus struct {
	Identifier string           `json:"identifier"`
	Status     JobStatus        `json:"status"`
	Progress   int              `json:"progress"`
	Attributes ReportAttributes `json:"attributes"`
	CreatedAt  time.Time        `json:"createdAt"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}

// IsFinished reports whether the report can be downloaded.
func (s ReportStatus) IsFinished() bool {
	return s.Status == JobStatusFinished
}

// ReportAttributes ...
type ReportAttributes struct {
	Format         Format          `json:"format"`
	ReportName     string          `json:"reportName"`
	Schema         json.RawMessage `json:"schema,omitempty"`
	ProjectIDs     []int64         `json:"projectIds,omitempty"`
	GroupID        *int64          `json:"groupId,omitempty"`
	OrganizationID *int64          `json:"organizationId,omitempty"`
}

// DownloadLink ...
type DownloadLink struct {
	URL      string    `json:"url"`
	ExpireIn time.Time `json:"expireIn"`
}

// ReportSettingsTemplate is a reusable rate configuration.
type ReportSettingsTemplate struct {
	ID        int64          `json:"id,omitempty"`
	Name      string         `json:"name"`
	Currency  Currency       `json:"currency"`
	Unit      Unit           `json:"unit"`
	Mode      string         `json:"mode,omitempty"`
	Config    TemplateConfig `json:"config"`
	IsPublic  bool           `json:"isPublic"`
	IsGlobal  bool           `json:"isGlobal,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

// TemplateConfig ...
type TemplateConfig struct {
	RegularRates    []RegularRate            `json:"regularRates"`
	IndividualRates []TemplateIndividualRate `json:"individualRates"`
}

// RegularRate ...
type RegularRate struct {
	Mode  RateMode `json:"mode"`
	Value float64  `json:"value"`
}

// TemplateIndividualRate scopes rates to a set of languages and users.
type TemplateIndividualRate struct {
	LanguageIDs []string      `json:"languageIds"`
	UserIDs     []int64       `json:"userIds"`
	Rates       []RegularRate `json:"rates"`
}

// ReportArchive is the persisted record of a generated report.
type ReportArchive struct {
	ID        int64           `json:"id"`
	ScopeType ScopeType       `json:"scopeType"`
	ScopeID   int64           `json:"scopeId"`
	UserID    int64           `json:"userId"`
	Name      string          `json:"name"`
	WebURL    string          `json:"webUrl"`
	Scheme    json.RawMessage `json:"scheme,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExportReportArchiveRequest ...
type ExportReportArchiveRequest struct {
	Format Format `json:"format"`
}

// PatchOperation ...
type PatchOperation string

// JSON patch operations.
const (
	PatchAdd     PatchOperation = "add"
	PatchReplace PatchOperation = "replace"
	PatchRemove  PatchOperation = "remove"
	PatchMove    PatchOperation = "move"
	PatchCopy    PatchOperation = "copy"
	PatchTest    PatchOperation = "test"
)

// PatchRequest is one field level mutation. The server applies a slice of them in order.
type PatchRequest struct {
	Op    PatchOperation `json:"op"`
	Path  string         `json:"path"`
	Value interface{}    `json:"value,omitempty"`
}

// ListOptions ...
type ListOptions struct {
	Limit  int
	Offset int
}

// ListReportArchivesOptions ...
type ListReportArchivesOptions struct {
	ScopeType ScopeType
	ScopeID   *int64
	ProjectID *int64
	ListOptions
}

// Pagination ...
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type listResponse[T any] struct {
	Data       []dataResponse[T] `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

func (l listResponse[T]) items() []T {
	items := make([]T, 0, len(l.Data))
	for _, item := range l.Data {
		items = append(items, item.Data)
	}
	return items
}
