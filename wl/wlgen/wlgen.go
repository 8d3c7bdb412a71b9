// Command wlgen turns wayland protocol XML into the interface, opcode and
// enum constants used by package wlp.
package main

import (
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"go/format"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/serenize/snaker"
)

type Description struct {
	Summary string `xml:"summary,attr"`
	Text    string `xml:",chardata"`
}

type Request struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Event struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Description *Description `xml:"description"`
	Args        []*Arg       `xml:"arg"`
}

type Enum struct {
	Name        string       `xml:"name,attr"`
	Since       string       `xml:"since,attr"`
	Bitfield    string       `xml:"bitfield,attr"`
	Description *Description `xml:"description"`
	Entries     []*Entry     `xml:"entry"`
}

type Arg struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Summary   string `xml:"summary,attr"`
	Interface string `xml:"interface,attr"`
	AllowNull string `xml:"allow-null,attr"`
	Enum      string `xml:"enum,attr"`
}

type Entry struct {
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
	Summary string `xml:"summary,attr"`
	Since   string `xml:"since,attr"`
}

type Interface struct {
	Name        string       `xml:"name,attr"`
	Version     string       `xml:"version,attr"`
	Description *Description `xml:"description"`
	Requests    []*Request   `xml:"request"`
	Events      []*Event     `xml:"event"`
	Enums       []*Enum      `xml:"enum"`
}

type Protocol struct {
	Name        string       `xml:"name,attr"`
	Copyright   string       `xml:"copyright"`
	Description *Description `xml:"description"`
	Interfaces  []*Interface `xml:"interface"`
}

func parse(raw []byte) (*Protocol, error) {
	p := &Protocol{}
	err := xml.Unmarshal(raw, p)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse xml")
	}
	for _, i := range p.Interfaces {
		if i.Name == "" {
			return nil, errors.New("interface without a name")
		}
	}
	return p, nil
}

const constTemplate = `// Code generated by wlgen from {{.File}}. DO NOT EDIT.

package {{.Package}}
{{range $iface := .Protocol.Interfaces}}
// {{$iface.Name}} version {{$iface.Version}}
const (
	{{ifname $iface.Name}}Interface = "{{$iface.Name}}"
	{{ifname $iface.Name}}Version = {{$iface.Version}}
)
{{if $iface.Requests}}
const (
{{- range $op, $req := $iface.Requests}}
	opCode{{ifname $iface.Name}}{{camel $req.Name}} = {{$op}}
{{- end}}
)
{{end}}
{{- if $iface.Events}}
const (
{{- range $op, $evt := $iface.Events}}
	opCode{{ifname $iface.Name}}{{camel $evt.Name}} = {{$op}}
{{- end}}
)
{{end}}
{{- range $enum := $iface.Enums}}
const (
{{- range $entry := $enum.Entries}}
	{{ifname $iface.Name}}{{camel $enum.Name}}{{camel $entry.Name}} = {{$entry.Value}}{{summary $entry.Summary}}
{{- end}}
)
{{end}}
{{- end}}`

func genTemplate(templateText string) *template.Template {
	funcMap := template.FuncMap{
		"ifname":  InterfaceName,
		"camel":   snaker.SnakeToCamel,
		"summary": SummaryComment,
	}

	return template.Must(template.New("wl").Funcs(funcMap).Parse(templateText))
}

// InterfaceName maps a protocol interface name to its Go type name. The
// core "wl_" prefix is dropped.
func InterfaceName(name string) string {
	name = strings.TrimPrefix(name, "wl_")
	return snaker.SnakeToCamel(name)
}

// SummaryComment renders an entry summary as a trailing line comment.
func SummaryComment(summary string) string {
	summary = strings.Join(strings.Fields(summary), " ")
	if summary == "" {
		return ""
	}
	return " // " + summary
}

func generate(p *Protocol, file, pkg string) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := genTemplate(constTemplate).Execute(buf, struct {
		File     string
		Package  string
		Protocol *Protocol
	}{file, pkg, p})
	if err != nil {
		return nil, errors.Wrap(err, "unable to execute template")
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "generated code does not parse")
	}
	return out, nil
}

func main() {
	in := flag.String("xml", "", "protocol XML file")
	out := flag.String("out", "", "output Go file")
	pkg := flag.String("pkg", "wlp", "package name of the generated file")
	flag.Parse()

	if err := run(*in, *out, *pkg); err != nil {
		fmt.Fprintln(os.Stderr, "wlgen:", err)
		os.Exit(1)
	}
}

func run(in, out, pkg string) error {
	if in == "" || out == "" {
		return errors.New("both -xml and -out are required")
	}
	data, err := ioutil.ReadFile(in)
	if err != nil {
		return errors.Wrap(err, "unable to read protocol")
	}
	p, err := parse(data)
	if err != nil {
		return errors.Wrapf(err, "unable to parse %s", in)
	}
	src, err := generate(p, filepath.Base(in), pkg)
	if err != nil {
		return err
	}
	return errors.Wrapf(ioutil.WriteFile(out, src, 0644), "unable to write %s", out)
}
