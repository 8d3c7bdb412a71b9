package imservice

import (
	"strconv"
	"strings"

	"github.com/elliotmr/imservice/wl/wlp"
)

// KeyboardVisibility is implemented by hosts that draw a virtual keyboard.
// Both methods run on the dispatching goroutine and must return promptly.
type KeyboardVisibility interface {
	ShowKeyboard()
	HideKeyboard()
}

// HintPurpose is implemented by hosts that adapt to the focused text
// field. It runs on the dispatching goroutine and must return promptly.
type HintPurpose interface {
	SetHintPurpose(hint ContentHint, purpose ContentPurpose)
}

// ContentHint is a bitfield describing the expected behavior of a text
// field.
type ContentHint uint32

const (
	HintNone               ContentHint = wlp.ZwpTextInputV3ContentHintNone
	HintCompletion         ContentHint = wlp.ZwpTextInputV3ContentHintCompletion
	HintSpellcheck         ContentHint = wlp.ZwpTextInputV3ContentHintSpellcheck
	HintAutoCapitalization ContentHint = wlp.ZwpTextInputV3ContentHintAutoCapitalization
	HintLowercase          ContentHint = wlp.ZwpTextInputV3ContentHintLowercase
	HintUppercase          ContentHint = wlp.ZwpTextInputV3ContentHintUppercase
	HintTitlecase          ContentHint = wlp.ZwpTextInputV3ContentHintTitlecase
	HintHiddenText         ContentHint = wlp.ZwpTextInputV3ContentHintHiddenText
	HintSensitiveData      ContentHint = wlp.ZwpTextInputV3ContentHintSensitiveData
	HintLatin              ContentHint = wlp.ZwpTextInputV3ContentHintLatin
	HintMultiline          ContentHint = wlp.ZwpTextInputV3ContentHintMultiline
)

var hintNames = []struct {
	h    ContentHint
	name string
}{
	{HintCompletion, "completion"},
	{HintSpellcheck, "spellcheck"},
	{HintAutoCapitalization, "auto_capitalization"},
	{HintLowercase, "lowercase"},
	{HintUppercase, "uppercase"},
	{HintTitlecase, "titlecase"},
	{HintHiddenText, "hidden_text"},
	{HintSensitiveData, "sensitive_data"},
	{HintLatin, "latin"},
	{HintMultiline, "multiline"},
}

// String joins the names of the set flags with '|'.
func (h ContentHint) String() string {
	if h == HintNone {
		return "none"
	}
	var parts []string
	rest := h
	for _, n := range hintNames {
		if h&n.h != 0 {
			parts = append(parts, n.name)
			rest &^= n.h
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

// ContentPurpose is the semantic type of a text field.
type ContentPurpose uint32

const (
	PurposeNormal   ContentPurpose = wlp.ZwpTextInputV3ContentPurposeNormal
	PurposeAlpha    ContentPurpose = wlp.ZwpTextInputV3ContentPurposeAlpha
	PurposeDigits   ContentPurpose = wlp.ZwpTextInputV3ContentPurposeDigits
	PurposeNumber   ContentPurpose = wlp.ZwpTextInputV3ContentPurposeNumber
	PurposePhone    ContentPurpose = wlp.ZwpTextInputV3ContentPurposePhone
	PurposeURL      ContentPurpose = wlp.ZwpTextInputV3ContentPurposeURL
	PurposeEmail    ContentPurpose = wlp.ZwpTextInputV3ContentPurposeEmail
	PurposeName     ContentPurpose = wlp.ZwpTextInputV3ContentPurposeName
	PurposePassword ContentPurpose = wlp.ZwpTextInputV3ContentPurposePassword
	PurposePin      ContentPurpose = wlp.ZwpTextInputV3ContentPurposePin
	PurposeDate     ContentPurpose = wlp.ZwpTextInputV3ContentPurposeDate
	PurposeTime     ContentPurpose = wlp.ZwpTextInputV3ContentPurposeTime
	PurposeDatetime ContentPurpose = wlp.ZwpTextInputV3ContentPurposeDatetime
	PurposeTerminal ContentPurpose = wlp.ZwpTextInputV3ContentPurposeTerminal
)

var purposeNames = [...]string{
	"normal", "alpha", "digits", "number", "phone", "url", "email",
	"name", "password", "pin", "date", "time", "datetime", "terminal",
}

func (p ContentPurpose) String() string {
	if int(p) < len(purposeNames) {
		return purposeNames[p]
	}
	return "purpose(" + strconv.FormatUint(uint64(p), 10) + ")"
}

// ChangeCause tells why the surrounding text last changed.
type ChangeCause uint32

const (
	CauseInputMethod ChangeCause = wlp.ZwpTextInputV3ChangeCauseInputMethod
	CauseOther       ChangeCause = wlp.ZwpTextInputV3ChangeCauseOther
)

func (c ChangeCause) String() string {
	switch c {
	case CauseInputMethod:
		return "input_method"
	case CauseOther:
		return "other"
	}
	return "cause(" + strconv.FormatUint(uint64(c), 10) + ")"
}
