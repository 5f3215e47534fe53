package api

import (
	"fmt"
	"time"
)

// Report names as the API expects them in the "name" field.
const (
	ReportCostEstimationPostEditing        = "costs-estimation-pe"
	ReportTranslationCostsPostEditing      = "translation-costs-pe"
	ReportTopMembers                       = "top-members"
	ReportContributionRawData              = "contribution-raw-data"
	ReportPreTranslateAccuracy             = "pre-translate-accuracy"
	ReportGroupTranslationCostsPostEditing = "group-translation-costs-pe"
	ReportGroupTopMembers                  = "group-top-members"
)

// ReportRequest is a project report generation request.
// The concrete type selects the report and carries its schema.
type ReportRequest interface {
	ReportName() string
	Validate() error
	projectReport()
}

// GroupReportRequest is a group or organization report generation request.
type GroupReportRequest interface {
	ReportName() string
	Validate() error
	groupReport()
}

type generateReportBody struct {
	Name   string      `json:"name"`
	Schema interface{} `json:"schema"`
}

// BaseRates ...
type BaseRates struct {
	FullTranslation float64 `json:"fullTranslation"`
	Proofread       float64 `json:"proofread"`
}

// IndividualRate overrides the base rates for some languages or users.
type IndividualRate struct {
	LanguageIDs     []string `json:"languageIds"`
	UserIDs         []int64  `json:"userIds,omitempty"`
	FullTranslation float64  `json:"fullTranslation"`
	Proofread       float64  `json:"proofread"`
}

// NetRateSchemes ...
type NetRateSchemes struct {
	TMMatch         []Match `json:"tmMatch,omitempty"`
	MTMatch         []Match `json:"mtMatch,omitempty"`
	SuggestionMatch []Match `json:"suggestionMatch,omitempty"`
}

// Match prices one match bucket.
type Match struct {
	MatchType MatchType `json:"matchType"`
	Price     float64   `json:"price"`
}

// Rates groups the rate tables shared by the cost reports.
type Rates struct {
	BaseRates       *BaseRates       `json:"baseRates,omitempty"`
	IndividualRates []IndividualRate `json:"individualRates,omitempty"`
	NetRateSchemes  *NetRateSchemes  `json:"netRateSchemes,omitempty"`
}

// Filters scopes a report to a language, files, directories, branches or labels and a time range.
type Filters struct {
	LanguageID       string           `json:"languageId,omitempty"`
	FileIDs          []int64          `json:"fileIds,omitempty"`
	DirectoryIDs     []int64          `json:"directoryIds,omitempty"`
	BranchIDs        []int64          `json:"branchIds,omitempty"`
	LabelIDs         []int64          `json:"labelIds,omitempty"`
	LabelIncludeType LabelIncludeType `json:"labelIncludeType,omitempty"`
	DateFrom         *time.Time       `json:"dateFrom,omitempty"`
	DateTo           *time.Time       `json:"dateTo,omitempty"`
}

func (f Filters) isEmpty() bool {
	return f.LanguageID == "" && len(f.FileIDs) == 0 && len(f.DirectoryIDs) == 0 && len(f.BranchIDs) == 0 &&
		len(f.LabelIDs) == 0 && f.LabelIncludeType == "" && f.DateFrom == nil && f.DateTo == nil
}

// CostEstimationPostEditing generates the post-editing cost estimation report.
// Setting TaskID selects the by-task schema, which excludes Filters.
type CostEstimationPostEditing struct {
	Unit                        Unit     `json:"unit,omitempty"`
	Currency                    Currency `json:"currency,omitempty"`
	Format                      Format   `json:"format,omitempty"`
	Rates
	CalculateInternalMatches    *bool  `json:"calculateInternalMatches,omitempty"`
	IncludePreTranslatedStrings *bool  `json:"includePreTranslatedStrings,omitempty"`
	TaskID                      *int64 `json:"taskId,omitempty"`
	Filters
}

// ReportName ...
func (CostEstimationPostEditing) ReportName() string { return ReportCostEstimationPostEditing }

func (CostEstimationPostEditing) projectReport() {}

// Validate ...
func (r CostEstimationPostEditing) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.currency(r.Currency)
	v.format(r.Format)
	v.rates(r.Rates, true)
	v.filters(r.Filters)
	if r.TaskID != nil && !r.Filters.isEmpty() {
		v.add("taskId", "exclusive", "taskId can not be combined with language, file, label or date filters")
	}
	return v.err()
}

// TranslationCostsPostEditing generates the post-editing translation costs report.
type TranslationCostsPostEditing struct {
	Unit     Unit     `json:"unit,omitempty"`
	Currency Currency `json:"currency,omitempty"`
	Format   Format   `json:"format,omitempty"`
	GroupBy  GroupBy  `json:"groupBy,omitempty"`
	Rates
	ExcludeApprovalsForEditedTranslations        *bool   `json:"excludeApprovalsForEditedTranslations,omitempty"`
	PreTranslatedStringsCategorizationAdjustment *bool   `json:"preTranslatedStringsCategorizationAdjustment,omitempty"`
	UserIDs                                      []int64 `json:"userIds,omitempty"`
	TaskID                                       *int64  `json:"taskId,omitempty"`
	Filters
}

// ReportName ...
func (TranslationCostsPostEditing) ReportName() string { return ReportTranslationCostsPostEditing }

func (TranslationCostsPostEditing) projectReport() {}

// Validate ...
func (r TranslationCostsPostEditing) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.currency(r.Currency)
	v.format(r.Format)
	v.groupBy(r.GroupBy)
	v.rates(r.Rates, true)
	v.filters(r.Filters)
	if r.TaskID != nil && (!r.Filters.isEmpty() || len(r.UserIDs) > 0) {
		v.add("taskId", "exclusive", "taskId can not be combined with user, language, file, label or date filters")
	}
	return v.err()
}

// TopMembers generates the top members report.
type TopMembers struct {
	Unit       Unit       `json:"unit,omitempty"`
	LanguageID string     `json:"languageId,omitempty"`
	Format     Format     `json:"format,omitempty"`
	DateFrom   *time.Time `json:"dateFrom,omitempty"`
	DateTo     *time.Time `json:"dateTo,omitempty"`
}

// ReportName ...
func (TopMembers) ReportName() string { return ReportTopMembers }

func (TopMembers) projectReport() {}

// Validate ...
func (r TopMembers) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.format(r.Format)
	v.dateRange(r.DateFrom, r.DateTo)
	return v.err()
}

// ContributionRawData exports raw translation, approval or vote events.
type ContributionRawData struct {
	Mode       ContributionMode `json:"mode"`
	Unit       Unit             `json:"unit,omitempty"`
	LanguageID string           `json:"languageId,omitempty"`
	UserID     *int64           `json:"userId,omitempty"`
	FileID     *int64           `json:"fileId,omitempty"`
	Columns    []string         `json:"columns,omitempty"`
	Format     Format           `json:"format,omitempty"`
	DateFrom   *time.Time       `json:"dateFrom,omitempty"`
	DateTo     *time.Time       `json:"dateTo,omitempty"`
}

// ReportName ...
func (ContributionRawData) ReportName() string { return ReportContributionRawData }

func (ContributionRawData) projectReport() {}

// Validate ...
func (r ContributionRawData) Validate() error {
	var v validator
	switch r.Mode {
	case ContributionModeTranslations, ContributionModeApprovals, ContributionModeVotes:
	case "":
		v.add("mode", "isEmpty", "mode is required")
	default:
		v.add("mode", "notInArray", fmt.Sprintf("unknown contribution mode: %s", r.Mode))
	}
	v.unit(r.Unit)
	v.format(r.Format)
	v.dateRange(r.DateFrom, r.DateTo)
	return v.err()
}

// PreTranslateAccuracy generates the pre-translate accuracy report.
type PreTranslateAccuracy struct {
	Unit                  Unit       `json:"unit,omitempty"`
	Format                Format     `json:"format,omitempty"`
	PostEditingCategories []string   `json:"postEditingCategories,omitempty"`
	LanguageID            string     `json:"languageId,omitempty"`
	TaskID                *int64     `json:"taskId,omitempty"`
	DateFrom              *time.Time `json:"dateFrom,omitempty"`
	DateTo                *time.Time `json:"dateTo,omitempty"`
}

// ReportName ...
func (PreTranslateAccuracy) ReportName() string { return ReportPreTranslateAccuracy }

func (PreTranslateAccuracy) projectReport() {}

// Validate ...
func (r PreTranslateAccuracy) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.format(r.Format)
	v.dateRange(r.DateFrom, r.DateTo)
	if r.TaskID != nil && (r.LanguageID != "" || r.DateFrom != nil || r.DateTo != nil) {
		v.add("taskId", "exclusive", "taskId can not be combined with language or date filters")
	}
	return v.err()
}

// GroupTranslationCostsPostEditing generates translation costs across the projects of a group or organization.
type GroupTranslationCostsPostEditing struct {
	ProjectIDs []int64    `json:"projectIds,omitempty"`
	Unit       Unit       `json:"unit,omitempty"`
	Currency   Currency   `json:"currency,omitempty"`
	Format     Format     `json:"format,omitempty"`
	GroupBy    GroupBy    `json:"groupBy,omitempty"`
	UserIDs    []int64    `json:"userIds,omitempty"`
	DateFrom   *time.Time `json:"dateFrom,omitempty"`
	DateTo     *time.Time `json:"dateTo,omitempty"`
	Rates
}

// ReportName ...
func (GroupTranslationCostsPostEditing) ReportName() string {
	return ReportGroupTranslationCostsPostEditing
}

func (GroupTranslationCostsPostEditing) groupReport() {}

// Validate ...
func (r GroupTranslationCostsPostEditing) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.currency(r.Currency)
	v.format(r.Format)
	v.groupBy(r.GroupBy)
	v.rates(r.Rates, false)
	v.dateRange(r.DateFrom, r.DateTo)
	return v.err()
}

// GroupTopMembers ...
type GroupTopMembers struct {
	ProjectIDs []int64    `json:"projectIds,omitempty"`
	Unit       Unit       `json:"unit,omitempty"`
	LanguageID string     `json:"languageId,omitempty"`
	Format     Format     `json:"format,omitempty"`
	GroupBy    GroupBy    `json:"groupBy,omitempty"`
	DateFrom   *time.Time `json:"dateFrom,omitempty"`
	DateTo     *time.Time `json:"dateTo,omitempty"`
}

// ReportName ...
func (GroupTopMembers) ReportName() string { return ReportGroupTopMembers }

func (GroupTopMembers) groupReport() {}

// Validate ...
func (r GroupTopMembers) Validate() error {
	var v validator
	v.unit(r.Unit)
	v.format(r.Format)
	v.groupBy(r.GroupBy)
	v.dateRange(r.DateFrom, r.DateTo)
	return v.err()
}

// validator collects field errors the same shape the API reports them in.
type validator struct {
	fields []FieldError
}

func (v *validator) add(key, code, message string) {
	v.fields = append(v.fields, FieldError{Key: key, Code: code, Message: message})
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return newLocalValidationError(v.fields)
}

func (v *validator) unit(u Unit) {
	switch u {
	case "", UnitStrings, UnitWords, UnitChars, UnitCharsWithSpaces:
	default:
		v.add("unit", "notInArray", fmt.Sprintf("unknown unit: %s", u))
	}
}

func (v *validator) currency(c Currency) {
	if c == "" {
		return
	}
	if len(c) != 3 {
		v.add("currency", "notInArray", fmt.Sprintf("unknown currency: %s", c))
		return
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			v.add("currency", "notInArray", fmt.Sprintf("unknown currency: %s", c))
			return
		}
	}
}

func (v *validator) format(f Format) {
	switch f {
	case "", FormatXLSX, FormatCSV, FormatJSON:
	default:
		v.add("format", "notInArray", fmt.Sprintf("unknown format: %s", f))
	}
}

func (v *validator) groupBy(g GroupBy) {
	switch g {
	case "", GroupByUser, GroupByLanguage:
	default:
		v.add("groupBy", "notInArray", fmt.Sprintf("unknown groupBy: %s", g))
	}
}

func (v *validator) rates(r Rates, baseRequired bool) {
	if r.BaseRates == nil {
		if baseRequired {
			v.add("baseRates", "isEmpty", "baseRates is required")
		}
	}
	for i, rate := range r.IndividualRates {
		if len(rate.LanguageIDs) == 0 && len(rate.UserIDs) == 0 {
			v.add(fmt.Sprintf("individualRates.%d", i), "isEmpty", "individual rate needs languageIds or userIds")
		}
	}
	if r.NetRateSchemes == nil {
		return
	}
	for _, matches := range [][]Match{r.NetRateSchemes.TMMatch, r.NetRateSchemes.MTMatch, r.NetRateSchemes.SuggestionMatch} {
		for _, m := range matches {
			switch m.MatchType {
			case MatchTypePerfect, MatchType100, MatchType99To95, MatchType94To90, MatchType89To80:
			default:
				v.add("netRateSchemes", "notInArray", fmt.Sprintf("unknown match type: %s", m.MatchType))
			}
		}
	}
}

func (v *validator) filters(f Filters) {
	switch f.LabelIncludeType {
	case "", StringsWithLabel, StringsWithoutLabel:
	default:
		v.add("labelIncludeType", "notInArray", fmt.Sprintf("unknown label include type: %s", f.LabelIncludeType))
	}
	v.dateRange(f.DateFrom, f.DateTo)
}

func (v *validator) dateRange(from, to *time.Time) {
	if from != nil && to != nil && to.Before(*from) {
		v.add("dateTo", "dateRange", "dateTo is before dateFrom")
	}
}
