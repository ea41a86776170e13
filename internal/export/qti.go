package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
)

// QTIExporter packages a quiz as a minimal IMS QTI 2.1 content package:
// a manifest plus one assessmentItem per question.
type QTIExporter struct{}

func (QTIExporter) BuildPackage(q quiz.Quiz) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	mf := imsManifest{
		Identifier: "quiz-" + q.ID,
		Xmlns:      "http://www.imsglobal.org/xsd/imscp_v1p1",
		Resources:  []imsResource{},
	}
	for i, qq := range q.Questions {
		id := fmt.Sprintf("q%d", i+1)
		itemName := id + ".xml"
		mf.Resources = append(mf.Resources, imsResource{
			Identifier: id,
			Type:       "imsqti_item_xmlv2p1",
			Href:       itemName,
			Files:      []imsFile{{Href: itemName}},
		})
		w, err := zw.Create(itemName)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, buildItemXML(id, qq)); err != nil {
			return nil, err
		}
	}

	mfw, err := zw.Create("imsmanifest.xml")
	if err != nil {
		return nil, err
	}
	b, err := xml.MarshalIndent(mf, "", "  ")
	if err != nil {
		return nil, err
	}
	mfw.Write([]byte(xml.Header))
	mfw.Write(b)

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- mini XML model for the manifest ---
type imsManifest struct {
	XMLName    xml.Name      `xml:"manifest"`
	Identifier string        `xml:"identifier,attr"`
	Xmlns      string        `xml:"xmlns,attr,omitempty"`
	Resources  []imsResource `xml:"resources>resource"`
}
type imsResource struct {
	Identifier string    `xml:"identifier,attr"`
	Type       string    `xml:"type,attr"`
	Href       string    `xml:"href,attr"`
	Files      []imsFile `xml:"file"`
}
type imsFile struct {
	Href string `xml:"href,attr"`
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func buildItemXML(id string, q quiz.Question) string {
	switch q.Type {
	case quiz.TypeMCQ, quiz.TypeTrueFalse:
		var choices strings.Builder
		correct := "A"
		if q.Type == quiz.TypeTrueFalse {
			choices.WriteString(`<simpleChoice identifier="A">True</simpleChoice>`)
			choices.WriteString(`<simpleChoice identifier="B">False</simpleChoice>`)
			if !strings.EqualFold(q.Answer, "true") {
				correct = "B"
			}
		} else {
			for i, opt := range q.Options {
				choices.WriteString(fmt.Sprintf(`<simpleChoice identifier="%c">%s</simpleChoice>`, 'A'+i, esc(opt)))
			}
		}
		return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<assessmentItem identifier="%s" title="%s" xmlns="http://www.imsglobal.org/xsd/imsqti_v2p1">
  <responseDeclaration identifier="RESPONSE" cardinality="single" baseType="identifier">
    <correctResponse><value>%s</value></correctResponse>
  </responseDeclaration>
  <itemBody>
    <p>%s</p>
    <choiceInteraction responseIdentifier="RESPONSE" maxChoices="1">
      %s
    </choiceInteraction>
  </itemBody>
</assessmentItem>`,
			id, string(q.Type), correct, esc(q.Prompt), choices.String(),
		)
	default: // fill_blank, identification
		return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<assessmentItem identifier="%s" title="%s" xmlns="http://www.imsglobal.org/xsd/imsqti_v2p1">
  <responseDeclaration identifier="RESPONSE" cardinality="single" baseType="string">
    <correctResponse><value>%s</value></correctResponse>
  </responseDeclaration>
  <itemBody>
    <p>%s</p>
    <textEntryInteraction responseIdentifier="RESPONSE"/>
  </itemBody>
</assessmentItem>`,
			id, string(q.Type), esc(q.Answer), esc(q.Prompt),
		)
	}
}
