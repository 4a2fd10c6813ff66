// Package helm provides the minimal chart loading used by the inspect
// command: load a chart from disk, merge user-supplied values, and hand back
// the coalesced values tree for image analysis.
package helm

import (
	"github.com/pkg/errors"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/chartutil"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/cli/values"
	"helm.sh/helm/v3/pkg/getter"
)

// LoadChartWithValues loads the chart at chartPath (directory or .tgz),
// merges the user-provided values flags (-f/--values, --set, --set-string,
// --set-file) and coalesces them with the chart's defaults, subcharts
// included. The returned map is the same values tree `helm template` would
// render against.
func LoadChartWithValues(chartPath string, valueOpts *values.Options) (*chart.Chart, map[string]interface{}, error) {
	loadedChart, err := loader.Load(chartPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to load chart %q", chartPath)
	}

	if valueOpts == nil {
		valueOpts = &values.Options{}
	}
	userValues, err := valueOpts.MergeValues(getter.All(cli.New()))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to merge user values")
	}

	mergedValues, err := chartutil.CoalesceValues(loadedChart, userValues)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to coalesce chart values")
	}

	return loadedChart, mergedValues, nil
}
