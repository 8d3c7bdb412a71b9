package imservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentHintString(t *testing.T) {
	assert.Equal(t, "none", HintNone.String())
	assert.Equal(t, "spellcheck", HintSpellcheck.String())
	assert.Equal(t, "hidden_text|sensitive_data", (HintHiddenText | HintSensitiveData).String())
	assert.Equal(t, "completion|0x1000", (HintCompletion | 0x1000).String())
}

func TestContentPurposeString(t *testing.T) {
	assert.Equal(t, "normal", PurposeNormal.String())
	assert.Equal(t, "digits", PurposeDigits.String())
	assert.Equal(t, "terminal", PurposeTerminal.String())
	assert.Equal(t, "purpose(99)", ContentPurpose(99).String())
}

func TestChangeCauseString(t *testing.T) {
	assert.Equal(t, "input_method", CauseInputMethod.String())
	assert.Equal(t, "other", CauseOther.String())
	assert.Equal(t, "cause(7)", ChangeCause(7).String())
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Unbound:   "unbound",
		Bound:     "bound",
		Active:    "active",
		Inactive:  "inactive",
		Destroyed: "destroyed",
		State(42): "unknown",
	} {
		assert.Equal(t, want, s.String())
	}
}

func TestBatchEmpty(t *testing.T) {
	assert.True(t, Batch{}.Empty())
	text := ""
	assert.False(t, Batch{Text: &text}.Empty())
	assert.False(t, Batch{Delete: &Deletion{}}.Empty())
}
