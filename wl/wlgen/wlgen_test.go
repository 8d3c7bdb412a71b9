package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data, err := ioutil.ReadFile("protocols/input-method-unstable-v2.xml")
	require.NoError(t, err)
	p, err := parse(data)
	require.NoError(t, err)
	require.Len(t, p.Interfaces, 2)

	im := p.Interfaces[0]
	assert.Equal(t, "zwp_input_method_v2", im.Name)
	assert.Equal(t, "1", im.Version)
	var reqs, evts []string
	for _, rq := range im.Requests {
		reqs = append(reqs, rq.Name)
	}
	for _, ev := range im.Events {
		evts = append(evts, ev.Name)
	}
	assert.Equal(t, []string{
		"commit_string", "set_preedit_string", "delete_surrounding_text",
		"commit", "get_input_popup_surface", "grab_keyboard", "destroy",
	}, reqs)
	assert.Equal(t, []string{
		"activate", "deactivate", "surrounding_text", "text_change_cause",
		"content_type", "done", "unavailable",
	}, evts)
	assert.Equal(t, "text", im.Requests[0].Args[0].Name)
	assert.Equal(t, "string", im.Requests[0].Args[0].Type)
}

func TestParseInvalid(t *testing.T) {
	_, err := parse([]byte("<protocol><interface"))
	assert.Error(t, err)
	_, err = parse([]byte(`<protocol name="x"><interface version="1"/></protocol>`))
	assert.Error(t, err)
}

func TestInterfaceName(t *testing.T) {
	for in, want := range map[string]string{
		"wl_display":                  "Display",
		"wl_seat":                     "Seat",
		"zwp_input_method_v2":         "ZwpInputMethodV2",
		"zwp_text_input_manager_v3":   "ZwpTextInputManagerV3",
		"zwp_input_method_manager_v2": "ZwpInputMethodManagerV2",
	} {
		assert.Equal(t, want, InterfaceName(in), in)
	}
}

func TestSummaryComment(t *testing.T) {
	assert.Equal(t, "", SummaryComment("  "))
	assert.Equal(t, " // two words", SummaryComment("two\n   words"))
}

func TestGenerate(t *testing.T) {
	for _, tc := range []struct {
		xml  string
		want []string
	}{
		{
			xml: "wayland.xml",
			want: []string{
				`DisplayInterface = "wl_display"`,
				"opCodeDisplayGetRegistry = 1",
				"opCodeDisplayDeleteID = 1",
				"opCodeRegistryGlobalRemove = 1",
				"SeatCapabilityKeyboard = 2",
			},
		},
		{
			xml: "input-method-unstable-v2.xml",
			want: []string{
				"opCodeZwpInputMethodV2CommitString = 0",
				"opCodeZwpInputMethodV2Commit = 3",
				"opCodeZwpInputMethodV2Destroy = 6",
				"opCodeZwpInputMethodV2ContentType = 4",
				"opCodeZwpInputMethodV2Unavailable = 6",
				"opCodeZwpInputMethodManagerV2GetInputMethod = 0",
			},
		},
		{
			xml: "text-input-unstable-v3.xml",
			want: []string{
				"opCodeZwpTextInputV3SetContentType = 5",
				"opCodeZwpTextInputV3Commit = 7",
				"opCodeZwpTextInputManagerV3GetTextInput = 1",
				"ZwpTextInputV3ContentPurposeDigits = 2",
				"ZwpTextInputV3ContentHintMultiline = 0x200",
			},
		},
	} {
		t.Run(tc.xml, func(t *testing.T) {
			data, err := ioutil.ReadFile(filepath.Join("protocols", tc.xml))
			require.NoError(t, err)
			p, err := parse(data)
			require.NoError(t, err)
			out, err := generate(p, tc.xml, "wlp")
			require.NoError(t, err)

			src := string(out)
			assert.True(t, strings.HasPrefix(src, "// Code generated by wlgen from "+tc.xml+". DO NOT EDIT."))
			assert.Contains(t, src, "package wlp")
			// gofmt aligns the blocks, so compare with collapsed spacing.
			flat := strings.Join(strings.Fields(src), " ")
			for _, w := range tc.want {
				assert.Contains(t, flat, w)
			}
		})
	}
}

func TestGenerateMatchesCheckedIn(t *testing.T) {
	for xml, out := range map[string]string{
		"wayland.xml":                  "../wlp/wayland_consts.go",
		"input-method-unstable-v2.xml": "../wlp/input-method_consts.go",
		"text-input-unstable-v3.xml":   "../wlp/text-input_consts.go",
	} {
		data, err := ioutil.ReadFile(filepath.Join("protocols", xml))
		require.NoError(t, err)
		p, err := parse(data)
		require.NoError(t, err)
		got, err := generate(p, xml, "wlp")
		require.NoError(t, err)
		want, err := ioutil.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), "%s is stale, run go generate ./wl/wlp", out)
	}
}

func TestRunRequiresFlags(t *testing.T) {
	assert.Error(t, run("", "out.go", "wlp"))
	assert.Error(t, run("protocols/wayland.xml", "", "wlp"))
}
