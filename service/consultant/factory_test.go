package consultant

import (
	"symposium-agent-backend/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTypeTemplateTakesPrecedence(t *testing.T) {
	consultant := testConsultant(model.ConsultantTypePureLLM)
	template := &model.Template{APIType: "tabular"}

	assert.Equal(t, model.ConsultantTypeTabular, ResolveType(consultant, template))
}

func TestResolveTypeFallsBackToConsultantTag(t *testing.T) {
	consultant := testConsultant(model.ConsultantTypeWebSearch)

	assert.Equal(t, model.ConsultantTypeWebSearch, ResolveType(consultant, nil))
}

func TestResolveTypeUnknownTagDefaultsToPureLLM(t *testing.T) {
	consultant := testConsultant("voice_clone")

	assert.Equal(t, model.ConsultantTypePureLLM, ResolveType(consultant, nil))

	template := &model.Template{APIType: "hologram"}
	assert.Equal(t, model.ConsultantTypePureLLM, ResolveType(consultant, template))
}

func TestResolveTypeEmptyDefaultsToPureLLM(t *testing.T) {
	consultant := testConsultant("")

	assert.Equal(t, model.ConsultantTypePureLLM, ResolveType(consultant, nil))
	assert.Equal(t, model.ConsultantTypePureLLM, ResolveType(consultant, &model.Template{}))
}

func TestFactoryNewReturnsMatchingStrategy(t *testing.T) {
	factory := NewFactory(&stubChatter{}, stubConfigLoader{})

	assert.IsType(t, &TabularStrategy{}, factory.New(testConsultant(model.ConsultantTypeTabular), nil))
	assert.IsType(t, &WebSearchStrategy{}, factory.New(testConsultant(model.ConsultantTypeWebSearch), nil))
	assert.IsType(t, &PlainStrategy{}, factory.New(testConsultant(model.ConsultantTypePureLLM), nil))
	assert.IsType(t, &PlainStrategy{}, factory.New(testConsultant("unknown"), nil))
}
