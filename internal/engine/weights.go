package engine

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/hirelens/screening-cli/internal/model"
)

// WeightVector maps the 11 metric codes to integer weights applied on a
// nominal 100-point scale. FinalScore divides by 100, not the vector total,
// so a vector totaling above 100 amplifies the sub-metric average and one
// below 100 dampens it.
type WeightVector map[model.MetricCode]int

// WeightProfiles holds one weight vector per seniority bucket.
type WeightProfiles map[model.Seniority]WeightVector

// DefaultWeights returns the reference seniority calibration. The totals
// deliberately range from 70 (junior) to 110 (lead): the same sub-metric
// scores stretch further for senior profiles.
func DefaultWeights() WeightProfiles {
	return WeightProfiles{
		model.SeniorityJunior: {
			model.MetricTDB: 15, model.MetricXR: 10, model.MetricOI: 8, model.MetricSC: 5,
			model.MetricDA: 5, model.MetricLC: 6, model.MetricCE: 6, model.MetricGA: 8,
			model.MetricSR: 3, model.MetricAC: 2, model.MetricCF: 2,
		},
		model.SeniorityMid: {
			model.MetricTDB: 22, model.MetricXR: 15, model.MetricOI: 12, model.MetricSC: 8,
			model.MetricDA: 6, model.MetricLC: 7, model.MetricCE: 5, model.MetricGA: 5,
			model.MetricSR: 6, model.MetricAC: 3, model.MetricCF: 2,
		},
		model.SenioritySenior: {
			model.MetricTDB: 28, model.MetricXR: 16, model.MetricOI: 14, model.MetricSC: 10,
			model.MetricDA: 6, model.MetricLC: 8, model.MetricCE: 4, model.MetricGA: 4,
			model.MetricSR: 7, model.MetricAC: 3, model.MetricCF: 1,
		},
		model.SeniorityLead: {
			model.MetricTDB: 30, model.MetricXR: 15, model.MetricOI: 16, model.MetricSC: 12,
			model.MetricDA: 5, model.MetricLC: 12, model.MetricCE: 3, model.MetricGA: 4,
			model.MetricSR: 7, model.MetricAC: 3, model.MetricCF: 3,
		},
	}
}

// LoadWeightProfiles reads seniority weight vectors from a YAML file,
// overlaying the defaults. Buckets absent from the file keep their default
// vector. Every vector present must cover all 11 metrics with non-negative
// weights and a positive total.
func LoadWeightProfiles(path string) (WeightProfiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "engine: read weight profile %s", path)
	}

	var file map[model.Seniority]map[model.MetricCode]int
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "engine: parse weight profile %s", path)
	}

	profiles := DefaultWeights()
	for seniority, vec := range file {
		if !seniority.Valid() {
			return nil, eris.Errorf("engine: unknown seniority %q in %s", seniority, path)
		}
		wv := WeightVector(vec)
		if err := wv.Validate(); err != nil {
			return nil, eris.Wrapf(err, "engine: weight profile %s, seniority %s", path, seniority)
		}
		profiles[seniority] = wv
	}
	return profiles, nil
}

// Validate checks that the vector covers all 11 metrics with non-negative
// weights and a positive total.
func (w WeightVector) Validate() error {
	sum := 0
	for _, code := range model.MetricCodes {
		weight, ok := w[code]
		if !ok {
			return eris.Errorf("missing weight for metric %s", code)
		}
		if weight < 0 {
			return eris.Errorf("negative weight %d for metric %s", weight, code)
		}
		sum += weight
	}
	if sum <= 0 {
		return eris.Errorf("weights sum to %d, want a positive total", sum)
	}
	return nil
}
