package config

import (
	"fmt"

	apperrors "fftcli/internal/errors"
	"fftcli/pkg/contracts/domain"
)

// ServiceTypeConfig describes how one survey stream's monthly extract
// is shaped: which file it arrives in, which sheet holds the data, and
// how its header variants map onto the canonical column names. The
// records are immutable and passed explicitly to the loader; nothing
// reads them from shared mutable state.
type ServiceTypeConfig struct {
	Service        domain.ServiceType
	ExtractPattern string
	SheetNames     []string
	// HeaderAliases maps a canonical column name to the lowercased
	// header variants seen in extracts for this stream. Matching is
	// case-insensitive on the trimmed source header.
	HeaderAliases map[string][]string
}

// commonAliases are header variants shared by every survey stream.
func commonAliases() map[string][]string {
	return map[string][]string{
		domain.ColTotalResponses: {"total responses", "responses received"},
		domain.ColTotalEligible:  {"total eligible", "eligible to respond"},
		domain.ColVeryGood:       {"very good", "extremely likely"},
		domain.ColGood:           {"good", "likely"},
		domain.ColNeither:        {"neither good nor poor", "neither likely nor unlikely"},
		domain.ColPoor:           {"poor", "unlikely"},
		domain.ColVeryPoor:       {"very poor", "extremely unlikely"},
		domain.ColDontKnow:       {"dont know", "don't know"},
		domain.ColPctPositive:    {"percentage positive", "% positive"},
		domain.ColPctNegative:    {"percentage negative", "% negative"},
		domain.ColICBCode:        {"icb_code", "icb code"},
		domain.ColTrustCode:      {"trust_code", "trust code", "org code"},
		domain.ColSiteCode:       {"site_code", "site code"},
		domain.ColWardCode:       {"ward_code", "ward code"},
		domain.ColOrgName:        {"org_name", "organisation name", "org name"},
	}
}

// serviceConfigs holds the per-stream records. Built once at package
// init; callers receive copies and cannot mutate the shared state.
var serviceConfigs = map[domain.ServiceType]ServiceTypeConfig{
	domain.ServiceInpatient: {
		Service:        domain.ServiceInpatient,
		ExtractPattern: InpatientExtractPattern,
		SheetNames:     []string{"Inpatient", "IP Data", "Data"},
		HeaderAliases:  commonAliases(),
	},
	domain.ServiceAE: {
		Service:        domain.ServiceAE,
		ExtractPattern: AEExtractPattern,
		SheetNames:     []string{"AE", "A&E", "ED Data", "Data"},
		HeaderAliases:  commonAliases(),
	},
	domain.ServiceMaternity: {
		Service:        domain.ServiceMaternity,
		ExtractPattern: MaternityExtractPattern,
		SheetNames:     []string{"Maternity", "Birth", "Data"},
		HeaderAliases:  commonAliases(),
	},
	domain.ServiceCommunity: {
		Service:        domain.ServiceCommunity,
		ExtractPattern: CommunityExtractPattern,
		SheetNames:     []string{"Community", "Data"},
		HeaderAliases:  commonAliases(),
	},
	domain.ServiceAmbulance: {
		Service:        domain.ServiceAmbulance,
		ExtractPattern: AmbulanceExtractPattern,
		SheetNames:     []string{"Ambulance", "PTS", "Data"},
		HeaderAliases:  commonAliases(),
	},
}

// ServiceConfig returns the extract configuration for a survey stream.
func ServiceConfig(s domain.ServiceType) (ServiceTypeConfig, error) {
	cfg, ok := serviceConfigs[s]
	if !ok {
		return ServiceTypeConfig{}, apperrors.NewConfigError(
			fmt.Sprintf("unknown service type %q", s), nil)
	}
	return cfg, nil
}

// AllServiceConfigs returns the configuration for every survey stream,
// in the canonical stream order.
func AllServiceConfigs() []ServiceTypeConfig {
	out := make([]ServiceTypeConfig, 0, len(serviceConfigs))
	for _, s := range domain.ServiceTypes() {
		out = append(out, serviceConfigs[s])
	}
	return out
}
