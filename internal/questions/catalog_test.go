package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foxform/internal/domains"
)

func TestCatalogKindsArePartitioned(t *testing.T) {
	for _, ti := range AnswerableTypes {
		assert.True(t, IsAnswerable(ti.Type), string(ti.Type))
	}
	for _, ti := range FlowScreens {
		assert.True(t, IsFlowScreen(ti.Type), string(ti.Type))
		assert.False(t, IsAnswerable(ti.Type), string(ti.Type))
	}
	for _, ti := range ContentScreens {
		assert.True(t, IsContentScreen(ti.Type), string(ti.Type))
		assert.False(t, IsAnswerable(ti.Type), string(ti.Type))
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(domains.QuestionShortText))
	assert.True(t, Known(domains.ScreenTimer))
	assert.False(t, Known("hologram"))
}

func TestNewAppliesDefaults(t *testing.T) {
	q := New(domains.QuestionOpinionScale)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, domains.QuestionOpinionScale, q.Type)
	require.NotNil(t, q.MinValue)
	require.NotNil(t, q.MaxValue)
	assert.Equal(t, 1, *q.MinValue)
	assert.Equal(t, 10, *q.MaxValue)

	w := New(domains.ScreenWelcome)
	assert.Equal(t, "Welcome", w.Title)
	assert.Equal(t, "Start", w.ButtonText)
}

func TestNewCopiesSliceDefaults(t *testing.T) {
	a := New(domains.QuestionDropdown)
	b := New(domains.QuestionDropdown)
	require.Len(t, a.Options, 3)

	a.Options[0] = "changed"
	assert.Equal(t, "Option 1", b.Options[0])

	info, ok := Info(domains.QuestionDropdown)
	require.True(t, ok)
	assert.Equal(t, "Option 1", info.Defaults.Options[0])
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	a := New(domains.QuestionShortText)
	b := New(domains.QuestionShortText)
	assert.NotEqual(t, a.ID, b.ID)
}
