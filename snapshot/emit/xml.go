package emit

import (
	"encoding/xml"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

const (
	xmlIndent = "  "

	// the plan sits on its own line inside the CDATA section, one level deeper than <input>
	cdataLead  = "\n" + xmlIndent + xmlIndent + xmlIndent
	cdataTrail = "\n" + xmlIndent + xmlIndent
)

type xmlDocument struct {
	XMLName   xml.Name      `xml:"plan-snapshots"`
	Snapshots []xmlSnapshot `xml:"plan-snapshot"`
}

type xmlSnapshot struct {
	Name  string   `xml:"name,attr"`
	Input xmlInput `xml:"input"`
}

type xmlInput struct {
	Text string `xml:",cdata"`
}

// XMLEmitter renders a group as a plan-snapshots XML document without an XML declaration.
//
//	<plan-snapshots>
//	  <plan-snapshot name="select_sql">
//	    <input><![CDATA[
//	      {"Plan":{"Node Type":"Seq Scan"}}
//	    ]]></input>
//	  </plan-snapshot>
//	</plan-snapshots>
type XMLEmitter struct{}

// NewXMLEmitter creates an XMLEmitter.
func NewXMLEmitter() *XMLEmitter {
	return &XMLEmitter{}
}

// Extension implements Emitter.
func (e *XMLEmitter) Extension() string {
	return string(FormatXML)
}

// Render implements Emitter.
func (e *XMLEmitter) Render(group snapshot.Group) ([]byte, error) {
	doc := xmlDocument{Snapshots: make([]xmlSnapshot, 0, len(group.Entries))}

	for _, entry := range group.Entries {
		doc.Snapshots = append(doc.Snapshots, xmlSnapshot{
			Name:  entry.Name(),
			Input: xmlInput{Text: cdataLead + entry.Plan + cdataTrail},
		})
	}

	out, err := xml.MarshalIndent(doc, "", xmlIndent)
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}

// PlanFromXMLInput strips the layout whitespace the XMLEmitter adds around a plan.
func PlanFromXMLInput(text string) string {
	if len(text) >= len(cdataLead)+len(cdataTrail) &&
		text[:len(cdataLead)] == cdataLead &&
		text[len(text)-len(cdataTrail):] == cdataTrail {
		return text[len(cdataLead) : len(text)-len(cdataTrail)]
	}

	return text
}
