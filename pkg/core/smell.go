package core

import (
	"sort"
	"strings"
)

// =============================================================================
// DataSmellType
// =============================================================================

// DataSmellType identifies one kind of data smell.
// The set is closed: every value is declared below and listed in AllSmellTypes.
type DataSmellType string

// Believability smells.
const (
	DummyValue              DataSmellType = "dummy-value"
	DuplicatedValue         DataSmellType = "duplicated-value"
	ExtremeValue            DataSmellType = "extreme-value"
	MeaninglessValue        DataSmellType = "meaningless-value"
	Misspelling             DataSmellType = "misspelling"
	SuspectClassValue       DataSmellType = "suspect-class-value"
	SuspectDateValue        DataSmellType = "suspect-date-value"
	SuspectDateTimeInterval DataSmellType = "suspect-date-time-interval"
	SuspectSign             DataSmellType = "suspect-sign"
	SuspectDistribution     DataSmellType = "suspect-distribution"
)

// Syntactic understandability smells.
const (
	AmbiguousDateTimeFormat DataSmellType = "ambiguous-date-time-format"
	AmbiguousValue          DataSmellType = "ambiguous-value"
	Casing                  DataSmellType = "casing"
	Contracting             DataSmellType = "contracting"
	ExtraneousValue         DataSmellType = "extraneous-value"
	IntermingledDataType    DataSmellType = "intermingled-data-type"
	LongDataValue           DataSmellType = "long-data-value"
	MissingValue            DataSmellType = "missing-value"
	Separating              DataSmellType = "separating"
	Spacing                 DataSmellType = "spacing"
	SpecialCharacter        DataSmellType = "special-character"
	Synonym                 DataSmellType = "synonym"
	Tagging                 DataSmellType = "tagging"
)

// Encoding understandability smells.
const (
	DateAsDateTime               DataSmellType = "date-as-date-time"
	DateAsString                 DataSmellType = "date-as-string"
	DateTimeAsString             DataSmellType = "date-time-as-string"
	FloatingPointNumberAsString  DataSmellType = "floating-point-number-as-string"
	IntegerAsFloatingPointNumber DataSmellType = "integer-as-floating-point-number"
	IntegerAsString              DataSmellType = "integer-as-string"
	TimeAsString                 DataSmellType = "time-as-string"
	SuspectCharacterEncoding     DataSmellType = "suspect-character-encoding"
)

// Consistency smells.
const (
	AbbreviationInconsistency     DataSmellType = "abbreviation-inconsistency"
	CasingInconsistency           DataSmellType = "casing-inconsistency"
	ClassInconsistency            DataSmellType = "class-inconsistency"
	DateTimeFormatInconsistency   DataSmellType = "date-time-format-inconsistency"
	MissingValueInconsistency     DataSmellType = "missing-value-inconsistency"
	SeparatingInconsistency       DataSmellType = "separating-inconsistency"
	SpacingInconsistency          DataSmellType = "spacing-inconsistency"
	SpecialCharacterInconsistency DataSmellType = "special-character-inconsistency"
	SyntaxInconsistency           DataSmellType = "syntax-inconsistency"
	UnitInconsistency             DataSmellType = "unit-inconsistency"
	TranspositionInconsistency    DataSmellType = "transposition-inconsistency"
	PrecisionInconsistency        DataSmellType = "precision-inconsistency"
)

// Category groups smells by the data quality dimension they threaten.
type Category string

// Smell categories.
const (
	CategoryBelievability              Category = "believability"
	CategorySyntacticUnderstandability Category = "syntactic-understandability"
	CategoryEncodingUnderstandability  Category = "encoding-understandability"
	CategoryConsistency                Category = "consistency"
)

// Label returns the human-readable category heading.
func (c Category) Label() string {
	switch c {
	case CategoryBelievability:
		return "Believability Smells"
	case CategorySyntacticUnderstandability:
		return "Syntactic Understandability Smells"
	case CategoryEncodingUnderstandability:
		return "Encoding Understandability Smells"
	case CategoryConsistency:
		return "Consistency Smells"
	default:
		return string(c)
	}
}

// AllCategories returns the categories in catalogue order.
func AllCategories() []Category {
	return []Category{
		CategoryBelievability,
		CategorySyntacticUnderstandability,
		CategoryEncodingUnderstandability,
		CategoryConsistency,
	}
}

type smellInfo struct {
	name     string
	category Category
}

// catalogue lists every smell in catalogue order.
var catalogue = []struct {
	t    DataSmellType
	info smellInfo
}{
	{DummyValue, smellInfo{"Dummy Value Smell", CategoryBelievability}},
	{DuplicatedValue, smellInfo{"Duplicated Value Smell", CategoryBelievability}},
	{ExtremeValue, smellInfo{"Extreme Value Smell", CategoryBelievability}},
	{MeaninglessValue, smellInfo{"Meaningless Value Smell", CategoryBelievability}},
	{Misspelling, smellInfo{"Misspelling Smell", CategoryBelievability}},
	{SuspectClassValue, smellInfo{"Suspect Class Value Smell", CategoryBelievability}},
	{SuspectDateValue, smellInfo{"Suspect Date Value Smell", CategoryBelievability}},
	{SuspectDateTimeInterval, smellInfo{"Suspect Date/Time Interval Smell", CategoryBelievability}},
	{SuspectSign, smellInfo{"Suspect Sign Smell", CategoryBelievability}},
	{SuspectDistribution, smellInfo{"Suspect Distribution Smell", CategoryBelievability}},

	{AmbiguousDateTimeFormat, smellInfo{"Ambiguous Date/Time Format Smell", CategorySyntacticUnderstandability}},
	{AmbiguousValue, smellInfo{"Ambiguous Value Smell", CategorySyntacticUnderstandability}},
	{Casing, smellInfo{"Casing Smell", CategorySyntacticUnderstandability}},
	{Contracting, smellInfo{"Contracting Smell", CategorySyntacticUnderstandability}},
	{ExtraneousValue, smellInfo{"Extraneous Value Smell", CategorySyntacticUnderstandability}},
	{IntermingledDataType, smellInfo{"Intermingled Data Type Smell", CategorySyntacticUnderstandability}},
	{LongDataValue, smellInfo{"Long Data Value Smell", CategorySyntacticUnderstandability}},
	{MissingValue, smellInfo{"Missing Value Smell", CategorySyntacticUnderstandability}},
	{Separating, smellInfo{"Separating Smell", CategorySyntacticUnderstandability}},
	{Spacing, smellInfo{"Spacing Smell", CategorySyntacticUnderstandability}},
	{SpecialCharacter, smellInfo{"Special Character Smell", CategorySyntacticUnderstandability}},
	{Synonym, smellInfo{"Synonym Smell", CategorySyntacticUnderstandability}},
	{Tagging, smellInfo{"Tagging Smell", CategorySyntacticUnderstandability}},

	{DateAsDateTime, smellInfo{"Date As DateTime Smell", CategoryEncodingUnderstandability}},
	{DateAsString, smellInfo{"Date As String Smell", CategoryEncodingUnderstandability}},
	{DateTimeAsString, smellInfo{"DateTime As String Smell", CategoryEncodingUnderstandability}},
	{FloatingPointNumberAsString, smellInfo{"Floating Point Number As String Smell", CategoryEncodingUnderstandability}},
	{IntegerAsFloatingPointNumber, smellInfo{"Integer As Floating Point Number Smell", CategoryEncodingUnderstandability}},
	{IntegerAsString, smellInfo{"Integer As String Smell", CategoryEncodingUnderstandability}},
	{TimeAsString, smellInfo{"Time As String Smell", CategoryEncodingUnderstandability}},
	{SuspectCharacterEncoding, smellInfo{"Suspect Character Encoding Smell", CategoryEncodingUnderstandability}},

	{AbbreviationInconsistency, smellInfo{"Abbreviation Inconsistency Smell", CategoryConsistency}},
	{CasingInconsistency, smellInfo{"Casing Inconsistency Smell", CategoryConsistency}},
	{ClassInconsistency, smellInfo{"Class Inconsistency Smell", CategoryConsistency}},
	{DateTimeFormatInconsistency, smellInfo{"Date/Time Format Inconsistency Smell", CategoryConsistency}},
	{MissingValueInconsistency, smellInfo{"Missing Value Inconsistency Smell", CategoryConsistency}},
	{SeparatingInconsistency, smellInfo{"Separating Inconsistency Smell", CategoryConsistency}},
	{SpacingInconsistency, smellInfo{"Spacing Inconsistency Smell", CategoryConsistency}},
	{SpecialCharacterInconsistency, smellInfo{"Special Character Inconsistency Smell", CategoryConsistency}},
	{SyntaxInconsistency, smellInfo{"Syntax Inconsistency Smell", CategoryConsistency}},
	{UnitInconsistency, smellInfo{"Unit Inconsistency Smell", CategoryConsistency}},
	{TranspositionInconsistency, smellInfo{"Transposition Inconsistency Smell", CategoryConsistency}},
	{PrecisionInconsistency, smellInfo{"Precision Inconsistency Smell", CategoryConsistency}},
}

var catalogueIndex = func() map[DataSmellType]smellInfo {
	m := make(map[DataSmellType]smellInfo, len(catalogue))
	for _, e := range catalogue {
		m[e.t] = e.info
	}
	return m
}()

// AllSmellTypes returns every smell kind in catalogue order.
func AllSmellTypes() []DataSmellType {
	out := make([]DataSmellType, len(catalogue))
	for i, e := range catalogue {
		out[i] = e.t
	}
	return out
}

// SmellTypesInCategory returns the smells of one category in catalogue order.
func SmellTypesInCategory(c Category) []DataSmellType {
	var out []DataSmellType
	for _, e := range catalogue {
		if e.info.category == c {
			out = append(out, e.t)
		}
	}
	return out
}

// IsValid reports whether t belongs to the catalogue.
func (t DataSmellType) IsValid() bool {
	_, ok := catalogueIndex[t]
	return ok
}

// String returns the stable identifier.
func (t DataSmellType) String() string {
	return string(t)
}

// Name returns the display name, e.g. "Dummy Value Smell".
func (t DataSmellType) Name() string {
	if info, ok := catalogueIndex[t]; ok {
		return info.name
	}
	return string(t)
}

// Category returns the category the smell belongs to.
func (t DataSmellType) Category() Category {
	return catalogueIndex[t].category
}

// ParseDataSmellType converts an identifier or display name to a DataSmellType.
// Matching is case-insensitive and tolerates underscores in place of dashes.
func ParseDataSmellType(s string) (DataSmellType, bool) {
	trimmed := strings.TrimSpace(s)
	key := DataSmellType(strings.ReplaceAll(strings.ToLower(trimmed), "_", "-"))
	if _, ok := catalogueIndex[key]; ok {
		return key, true
	}
	for _, e := range catalogue {
		if strings.EqualFold(e.info.name, trimmed) {
			return e.t, true
		}
	}
	return "", false
}

// SortSmellTypes sorts smells in catalogue order. Unknown kinds sort last by identifier.
func SortSmellTypes(types []DataSmellType) {
	pos := make(map[DataSmellType]int, len(catalogue))
	for i, e := range catalogue {
		pos[e.t] = i
	}
	sort.SliceStable(types, func(i, j int) bool {
		pi, iok := pos[types[i]]
		pj, jok := pos[types[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return types[i] < types[j]
		}
	})
}
