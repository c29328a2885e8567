package score

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bareebaree/transmuseTATE/model"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="3.1">
  <work><work-title>Adapter Test</work-title></work>
  <part id="P1">
    <measure number="1">
      <attributes><divisions>2</divisions></attributes>
      <note>
        <pitch><step>C</step><octave>4</octave></pitch>
        <duration>2</duration>
        <notations><articulations><tenuto/></articulations></notations>
      </note>
      <note>
        <chord/>
        <pitch><step>E</step><octave>4</octave></pitch>
        <duration>2</duration>
      </note>
      <note>
        <rest/>
        <duration>1</duration>
      </note>
      <note>
        <pitch><step>G</step><octave>4</octave></pitch>
        <duration>3</duration>
      </note>
    </measure>
  </part>
</score-partwise>`

func writeTempScore(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(sampleXML), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePlainMusicXML(t *testing.T) {
	path := writeTempScore(t, "piece.musicxml")
	s, err := Parse(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("Adapter Test", s.Title)
	assert.Len(s.Parts, 1)
	assert.Len(s.Parts[0].Measures, 1)

	events := s.Parts[0].Measures[0].Events
	assert.Len(events, 4)

	root, ok := events[0].(model.Note)
	assert.True(ok)
	assert.Equal(uint8(60), root.Midi)
	assert.Equal(0.0, root.Offset())
	assert.Equal(1.0, root.QuarterLength())
	assert.Equal([]string{"Tenuto"}, root.Articulations)

	// chord note sounds at the root's offset, not after it
	third, ok := events[1].(model.Note)
	assert.True(ok)
	assert.Equal(uint8(64), third.Midi)
	assert.Equal(0.0, third.Offset())

	rest, ok := events[2].(model.Rest)
	assert.True(ok)
	assert.Equal(1.0, rest.Offset())
	assert.Equal(0.5, rest.QuarterLength())

	last, ok := events[3].(model.Note)
	assert.True(ok)
	assert.Equal(1.5, last.Offset())
	assert.Equal(1.5, last.QuarterLength())
}

func TestParseCompressedMXL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "piece.mxl")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)

	manifest, err := zw.Create("META-INF/container.xml")
	if err != nil {
		t.Fatal(err)
	}
	manifest.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<container><rootfiles><rootfile full-path="score.xml"/></rootfiles></container>`))

	entry, err := zw.Create("score.xml")
	if err != nil {
		t.Fatal(err)
	}
	entry.Write([]byte(sampleXML))

	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := Parse(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("Adapter Test", s.Title)
	assert.Len(s.Parts[0].Measures[0].Events, 4)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.musicxml"))
	assert.Error(t, err)
}

func TestFromHeldNotes(t *testing.T) {
	m := FromHeldNotes([]uint8{60, 64, 67})

	assert := assert.New(t)
	assert.Len(m.Events, 3)
	for i, want := range []uint8{60, 64, 67} {
		n, ok := m.Events[i].(model.Note)
		assert.True(ok)
		assert.Equal(want, n.Midi)
		assert.Equal(0.0, n.Offset())
	}
}
