package criteria

import (
	"github.com/viant/mdflow/service/dao"
)

// Status is the parameter name selecting entities by status.
const Status = "Status"

// FilterByStatus reports whether status satisfies the Status parameter, if any.
// Other parameters are ignored.
func FilterByStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != Status {
			continue
		}
		for _, candidate := range parameter.Values() {
			if status == candidate {
				return true
			}
		}
		return false
	}
	return true
}
