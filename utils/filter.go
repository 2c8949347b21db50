package utils

// operatorAliases maps MongoDB operator names to the ones connor registers.
var operatorAliases = map[string]string{
	"$gte": "$ge",
	"$lte": "$le",
}

// NormalizeFilter returns filter as a decoded JSON document (numbers are
// float64) with $gte and $lte rewritten to $ge and $le at any depth.
func NormalizeFilter(filter map[string]interface{}) (map[string]interface{}, error) {

	normalized := map[string]interface{}{}
	err := Remarshal(filter, &normalized)
	if err != nil {
		return nil, err
	}

	return renameOperators(normalized).(map[string]interface{}), nil
}

func renameOperators(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if alias, ok := operatorAliases[key]; ok {
				key = alias
			}
			result[key] = renameOperators(value)
		}
		return result
	case []interface{}:
		for i := range v {
			v[i] = renameOperators(v[i])
		}
		return v
	}
	return v
}
