package script

import (
	"sort"
	"strconv"

	"github.com/viant/mdflow/model/types"
	"github.com/viant/mdflow/service/action/section"
)

// Config keys
const (
	KeyScript        = "script"
	KeyOnSuccess     = "goto_on_success"
	KeyOnFailure     = "goto_on_failure"
	KeyOnCode        = "goto_on_code"
	KeyTimeoutMs     = "timeout_ms"
	KeySaveStdoutTo  = "save_stdout_to"
	defaultTimeoutMs = 60000
)

// Input represents run_script section configuration
type Input struct {
	Script       string
	OnSuccess    string
	OnFailure    string
	OnCode       map[int]string
	TimeoutMs    int
	SaveStdoutTo string
}

// NewInput reads run_script configuration.
func NewInput(config map[string]interface{}) (*Input, error) {
	ret := &Input{}
	var ok bool
	var err error
	if ret.Script, ok, err = section.String(config, KeyScript); err != nil {
		return nil, err
	} else if !ok || ret.Script == "" {
		return nil, types.NewMissingConfigError(KeyScript)
	}
	if ret.OnSuccess, _, err = section.String(config, KeyOnSuccess); err != nil {
		return nil, err
	}
	if ret.OnFailure, _, err = section.String(config, KeyOnFailure); err != nil {
		return nil, err
	}
	if ret.SaveStdoutTo, _, err = section.String(config, KeySaveStdoutTo); err != nil {
		return nil, err
	}
	if ret.TimeoutMs, ok, err = section.Int(config, KeyTimeoutMs); err != nil {
		return nil, err
	} else if ok && ret.TimeoutMs <= 0 {
		return nil, types.NewInvalidConfigError(KeyTimeoutMs, ret.TimeoutMs, "positive integer")
	}
	codes, err := codeTargets(config)
	if err != nil {
		return nil, err
	}
	ret.OnCode = codes
	return ret, nil
}

// Targets returns every configured transition target.
func (i *Input) Targets() []string {
	var ret []string
	if i.OnSuccess != "" {
		ret = append(ret, i.OnSuccess)
	}
	if i.OnFailure != "" {
		ret = append(ret, i.OnFailure)
	}
	for _, code := range sortedCodes(i.OnCode) {
		ret = append(ret, i.OnCode[code])
	}
	return ret
}

// Target selects the transition for an exit status; empty when none applies.
func (i *Input) Target(status int) string {
	if target, ok := i.OnCode[status]; ok {
		return target
	}
	if status == 0 {
		return i.OnSuccess
	}
	return i.OnFailure
}

func codeTargets(config map[string]interface{}) (map[int]string, error) {
	value, ok := config[KeyOnCode]
	if !ok || value == nil {
		return nil, nil
	}
	ret := map[int]string{}
	switch actual := value.(type) {
	case map[string]interface{}:
		for k, v := range actual {
			code, err := strconv.Atoi(k)
			if err != nil {
				return nil, types.NewInvalidConfigError(KeyOnCode+"."+k, k, "integer exit code")
			}
			target, ok := v.(string)
			if !ok {
				return nil, types.NewInvalidConfigError(KeyOnCode+"."+k, v, "string")
			}
			ret[code] = target
		}
	default:
		return nil, types.NewInvalidConfigError(KeyOnCode, value, "mapping")
	}
	return ret, nil
}

func sortedCodes(codes map[int]string) []int {
	ret := make([]int, 0, len(codes))
	for code := range codes {
		ret = append(ret, code)
	}
	sort.Ints(ret)
	return ret
}
