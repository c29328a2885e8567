// Package mxl decodes score-partwise MusicXML documents, keeping each
// measure's children in document order so note offsets can be recovered.
package mxl

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

type Document struct {
	XMLName xml.Name `xml:"score-partwise"`
	Work    Work     `xml:"work"`
	Parts   []Part   `xml:"part"`
}

type Work struct {
	Title string `xml:"work-title"`
}

type Part struct {
	ID       string    `xml:"id,attr"`
	Measures []Measure `xml:"measure"`
}

// Measure holds notes, backups and forwards in the order they appear.
type Measure struct {
	Number int
	Attrs  Attributes
	Events []any
}

type Attributes struct {
	Divisions int  `xml:"divisions"`
	Time      Time `xml:"time"`
}

type Time struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

// Backup moves the measure cursor backwards; used for multi-voice writing.
type Backup struct {
	Duration int `xml:"duration"`
}

type Forward struct {
	Duration int `xml:"duration"`
}

type Note struct {
	Pitch     *Pitch    `xml:"pitch"`
	Rest      *struct{} `xml:"rest"`
	Chord     *struct{} `xml:"chord"`
	Grace     *struct{} `xml:"grace"`
	Duration  int       `xml:"duration"`
	Voice     int       `xml:"voice"`
	Type      string    `xml:"type"`
	Notations Notations `xml:"notations"`
}

type Notations struct {
	Articulations ArticulationSet `xml:"articulations"`
}

// ArticulationSet collects the class names of articulation marks in the
// order they appear under <articulations>.
type ArticulationSet struct {
	Classes []string
}

var articulationClasses = map[string]string{
	"staccato":        "Staccato",
	"staccatissimo":   "Staccatissimo",
	"accent":          "Accent",
	"strong-accent":   "StrongAccent",
	"tenuto":          "Tenuto",
	"detached-legato": "DetachedLegato",
	"spiccato":        "Spiccato",
	"scoop":           "Scoop",
	"plop":            "Plop",
	"doit":            "Doit",
	"falloff":         "Falloff",
	"breath-mark":     "BreathMark",
	"caesura":         "Caesura",
	"stress":          "Stress",
	"unstress":        "Unstress",
}

func className(local string) string {
	if c, ok := articulationClasses[local]; ok {
		return c
	}
	var b strings.Builder
	for _, piece := range strings.Split(local, "-") {
		if piece == "" {
			continue
		}
		b.WriteString(strings.ToUpper(piece[:1]))
		b.WriteString(piece[1:])
	}
	return b.String()
}

func (a *ArticulationSet) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			a.Classes = append(a.Classes, className(t.Name.Local))
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

func (m *Measure) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local == "number" {
			m.Number, _ = strconv.Atoi(attr.Value)
		}
	}

	for {
		token, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "attributes":
				var attrs Attributes
				if err := d.DecodeElement(&attrs, &t); err != nil {
					return err
				}
				if attrs.Divisions != 0 {
					m.Attrs.Divisions = attrs.Divisions
				}
				if attrs.Time.Beats != 0 {
					m.Attrs.Time = attrs.Time
				}
			case "note":
				var n Note
				if err := d.DecodeElement(&n, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, n)
			case "backup":
				var b Backup
				if err := d.DecodeElement(&b, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, b)
			case "forward":
				var f Forward
				if err := d.DecodeElement(&f, &t); err != nil {
					return err
				}
				m.Events = append(m.Events, f)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

type Pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter"`
	Octave int    `xml:"octave"`
}

// Midi converts the pitch to a MIDI note number (C4 == 60).
func (p Pitch) Midi() int {
	var n int
	switch p.Step {
	case "C":
		n = 0
	case "D":
		n = 2
	case "E":
		n = 4
	case "F":
		n = 5
	case "G":
		n = 7
	case "A":
		n = 9
	case "B":
		n = 11
	}
	return n + (p.Octave+1)*12 + p.Alter
}

func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// Open reads a MusicXML file from disk. A .mxl file is a zip container whose
// root document is named by META-INF/container.xml.
func Open(path string) (*Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".mxl") {
		return openCompressed(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func openCompressed(path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	name := rootfileName(&r.Reader)
	if name == "" {
		return nil, errors.New("mxl container has no root document")
	}
	f, err := r.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func rootfileName(r *zip.Reader) string {
	if f, err := r.Open("META-INF/container.xml"); err == nil {
		defer f.Close()
		var c container
		if err := xml.NewDecoder(f).Decode(&c); err == nil && len(c.Rootfiles) > 0 {
			return c.Rootfiles[0].FullPath
		}
	}

	// no container manifest, fall back to the first score-looking entry
	for _, f := range r.File {
		lower := strings.ToLower(f.Name)
		if strings.HasPrefix(lower, "meta-inf/") {
			continue
		}
		if strings.HasSuffix(lower, ".xml") || strings.HasSuffix(lower, ".musicxml") {
			return f.Name
		}
	}
	return ""
}
