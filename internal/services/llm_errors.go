package services

import (
	"fmt"

	"github.com/yoockh/jobmate/internal/providers/llm"
	"github.com/yoockh/jobmate/internal/utils"
)

// notConfigured is returned when the completion provider for a flow has no key.
func notConfigured(op, keyName string) error {
	return utils.E(utils.CodeConfiguration, op, keyName+" API key is not configured", nil)
}

func upstream(op string, p llm.Provider, err error) error {
	return utils.E(utils.CodeUpstream, op, fmt.Sprintf("%s API error: %v", p.Name(), err), err)
}
