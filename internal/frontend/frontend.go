package frontend

import "os"

// Environment variable names read by Resolve.
const (
	EnvClassificationEndpoint       = "CLASSIFICATIONENDPOINT"
	EnvPathserviceEndpoint          = "PATHSERVICEENDPOINT"
	EnvDroneSpeed                   = "DRONESPEED"
	EnvTractorSpeed                 = "TRACTORSPEED"
	EnvCommSpeed                    = "COMMSPEED"
	EnvWealthyCropInitialPercentage = "WEALTHYCROPINITIALPERCENTAGE"
)

// Lookup retrieves the value of an environment variable. It matches the
// signature of os.LookupEnv.
type Lookup func(key string) (string, bool)

// Configuration is the flat record served to the frontend. Field order is the
// serialization order.
type Configuration struct {
	ClassificationEndpoint       Value `json:"classificationEndpoint"`
	PathserviceEndpoint          Value `json:"pathserviceEndpoint"`
	DroneSpeed                   Value `json:"droneSpeed"`
	TractorSpeed                 Value `json:"tractorSpeed"`
	CommSpeed                    Value `json:"commSpeed"`
	WealthyCropInitialPercentage Value `json:"wealthyCropInitialPercentage"`
}

// Defaults returns the record produced when no environment variable is set.
func Defaults() Configuration {
	return Configuration{
		ClassificationEndpoint:       String("http://localhost:5002"),
		PathserviceEndpoint:          String("http://localhost:5003"),
		DroneSpeed:                   Number("0.5"),
		TractorSpeed:                 Number("0.1"),
		CommSpeed:                    Number("1"),
		WealthyCropInitialPercentage: Number("50"),
	}
}

// Resolve reads every record variable through lookup. Unset or empty
// variables fall back to the default; everything else is passed through as a
// string, unparsed. A nil lookup reads the process environment.
func Resolve(lookup Lookup) Configuration {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Defaults()
	for _, f := range cfg.fields() {
		if v, ok := lookup(f.env); ok && v != "" {
			*f.value = String(v)
		}
	}
	return cfg
}

type field struct {
	env   string
	value *Value
}

func (c *Configuration) fields() []field {
	return []field{
		{EnvClassificationEndpoint, &c.ClassificationEndpoint},
		{EnvPathserviceEndpoint, &c.PathserviceEndpoint},
		{EnvDroneSpeed, &c.DroneSpeed},
		{EnvTractorSpeed, &c.TractorSpeed},
		{EnvCommSpeed, &c.CommSpeed},
		{EnvWealthyCropInitialPercentage, &c.WealthyCropInitialPercentage},
	}
}

// MapLookup adapts a map to a Lookup, primarily for tests and dotenv-style
// sources.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
