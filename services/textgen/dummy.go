package textgensvc

import (
	"context"

	"github.com/zawyahq/zawya/core"
)

// DummyService echoes the prompt back. Used in dev and tests.
type DummyService struct {
	Reply string
	Err   error
}

var _ core.TextService = (*DummyService)(nil)

func NewDummyService() *DummyService {
	return &DummyService{}
}

func (svc DummyService) Expand(_ context.Context, prompt string) (string, error) {
	if svc.Err != nil {
		return "", svc.Err
	}
	if svc.Reply != "" {
		return svc.Reply, nil
	}
	return prompt, nil
}
