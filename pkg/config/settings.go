package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigUnavailable is returned when the settings document cannot be loaded.
// A run cannot proceed without it.
var ErrConfigUnavailable = errors.New("settings unavailable")

// Bucket names used by the default settings.
const (
	BucketInbound = "Inbound"
	BucketDA      = "DA"
	BucketICQA    = "ICQA"
	BucketCRETs   = "CRETs"
)

// DefaultDADeptIDs is used when the settings document has no DA bucket.
var DefaultDADeptIDs = []string{"1211030", "1211040", "1299030", "1299040"}

var (
	defaultBucketOrder    = []string{BucketInbound, BucketDA, BucketICQA, BucketCRETs}
	defaultClaimOrder     = []string{BucketDA, BucketInbound, BucketICQA, BucketCRETs}
	defaultPresentMarkers = []string{"X"}
)

// BucketDef describes which roster rows a department bucket claims.
type BucketDef struct {
	DeptIDs []string `yaml:"dept_ids" json:"dept_ids"`
	// ManagementAreaID, when set, additionally requires an exact area match.
	ManagementAreaID string `yaml:"management_area_id,omitempty" json:"management_area_id,omitempty"`
	// SubtractsFrom lists broader buckets that must not claim this bucket's dept ids.
	SubtractsFrom []string `yaml:"subtracts_from,omitempty" json:"subtracts_from,omitempty"`
}

// Settings is the site settings document: present markers, department buckets
// and the shift schedule. It is loaded once by the caller and passed by value
// into every pipeline call; nothing in the pipeline mutates it.
type Settings struct {
	PresentMarkers []string                       `yaml:"present_markers" json:"present_markers"`
	Departments    map[string]BucketDef           `yaml:"departments" json:"departments"`
	ShiftSchedule  map[string]map[string][]string `yaml:"shift_schedule" json:"shift_schedule"`
	// BucketOrder is the display order of buckets in every output.
	BucketOrder []string `yaml:"bucket_order,omitempty" json:"bucket_order,omitempty"`
	// ClaimOrder decides which bucket wins when several could claim a person.
	ClaimOrder []string `yaml:"claim_order,omitempty" json:"claim_order,omitempty"`
}

// LoadSettings reads and parses the settings document at path.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	return ParseSettings(data)
}

// ParseSettings parses a YAML or JSON settings document and fills in defaults:
//   - present markers are trimmed and upper-cased, default ["X"]
//   - a missing DA bucket is synthesized from DefaultDADeptIDs, subtracting from Inbound;
//     a configured DA always subtracts from Inbound too
//   - bucket and claim orders default to Inbound, DA, ICQA, CRETs and DA, Inbound, ICQA, CRETs
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	if len(s.Departments) == 0 {
		return Settings{}, fmt.Errorf("%w: no departments configured", ErrConfigUnavailable)
	}
	if len(s.ShiftSchedule) == 0 {
		return Settings{}, fmt.Errorf("%w: no shift_schedule configured", ErrConfigUnavailable)
	}
	return s.withDefaults(), nil
}

func (s Settings) withDefaults() Settings {
	out := Settings{
		Departments:   make(map[string]BucketDef, len(s.Departments)+1),
		ShiftSchedule: s.ShiftSchedule,
		BucketOrder:   slices.Clone(s.BucketOrder),
		ClaimOrder:    slices.Clone(s.ClaimOrder),
	}

	for _, m := range s.PresentMarkers {
		out.PresentMarkers = append(out.PresentMarkers, strings.ToUpper(strings.TrimSpace(m)))
	}
	if len(out.PresentMarkers) == 0 {
		out.PresentMarkers = slices.Clone(defaultPresentMarkers)
	}

	for name, def := range s.Departments {
		out.Departments[name] = def
	}
	if da, ok := out.Departments[BucketDA]; !ok {
		out.Departments[BucketDA] = BucketDef{
			DeptIDs:       slices.Clone(DefaultDADeptIDs),
			SubtractsFrom: []string{BucketInbound},
		}
	} else if _, inbound := out.Departments[BucketInbound]; inbound && !slices.Contains(da.SubtractsFrom, BucketInbound) {
		// DA always wins its dept ids over Inbound, whatever the claim order.
		da.SubtractsFrom = append(slices.Clone(da.SubtractsFrom), BucketInbound)
		out.Departments[BucketDA] = da
	}

	if len(out.BucketOrder) == 0 {
		out.BucketOrder = slices.Clone(defaultBucketOrder)
	}
	if len(out.ClaimOrder) == 0 {
		out.ClaimOrder = slices.Clone(defaultClaimOrder)
	}
	return out
}

// WithoutBucket returns a copy of the settings with the named bucket removed
// from the departments and both orders.
func (s Settings) WithoutBucket(name string) Settings {
	out := s
	out.Departments = make(map[string]BucketDef, len(s.Departments))
	for k, v := range s.Departments {
		if k != name {
			out.Departments[k] = v
		}
	}
	out.BucketOrder = slices.DeleteFunc(slices.Clone(s.BucketOrder), func(b string) bool { return b == name })
	out.ClaimOrder = slices.DeleteFunc(slices.Clone(s.ClaimOrder), func(b string) bool { return b == name })
	return out
}

// Buckets returns the configured buckets in display order. Names in the order
// list without a definition are skipped; defined buckets missing from the
// order list follow, sorted by name.
func (s Settings) Buckets() []string {
	out := make([]string, 0, len(s.Departments))
	listed := make(map[string]struct{}, len(s.BucketOrder))
	for _, name := range s.BucketOrder {
		if _, dup := listed[name]; dup {
			continue
		}
		if _, ok := s.Departments[name]; ok {
			out = append(out, name)
			listed[name] = struct{}{}
		}
	}

	var rest []string
	for name := range s.Departments {
		if _, ok := listed[name]; !ok {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(out, rest...)
}

// CodesFor returns the corner codes configured for a shift on a day name
// ("Monday", ...). The result is a copy and may be empty.
func (s Settings) CodesFor(shift, day string) []string {
	return slices.Clone(s.ShiftSchedule[shift][day])
}

// IsPresentMarker reports whether an upper-cased, trimmed attendance value
// counts as on premises.
func (s Settings) IsPresentMarker(v string) bool {
	return slices.Contains(s.PresentMarkers, v)
}

// Shifts returns the configured shift names, sorted.
func (s Settings) Shifts() []string {
	out := make([]string, 0, len(s.ShiftSchedule))
	for name := range s.ShiftSchedule {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
