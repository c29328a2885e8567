package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/remi"
	"github.com/bareebaree/transmuseTATE/score"
	"github.com/bareebaree/transmuseTATE/util"
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Previews REMI tokens for live MIDI input",
	Long:  `Previews REMI tokens for live MIDI input`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

// livePreview tracks held keys and prints a debounced token preview. The
// held map is only ever touched on the MIDI driver goroutine; the debounced
// print runs on the debounce timer goroutine and gets a key snapshot, never
// the live map.
type livePreview struct {
	held      map[uint8]bool
	debounced func(func())
	out       io.Writer
}

func newLivePreview(out io.Writer) *livePreview {
	return &livePreview{
		held:      make(map[uint8]bool),
		debounced: debounce.New(50 * time.Millisecond),
		out:       out,
	}
}

func (p *livePreview) noteOn(key uint8) {
	p.held[key] = true
	p.schedule()
}

func (p *livePreview) noteOff(key uint8) {
	delete(p.held, key)
	p.schedule()
}

func (p *livePreview) schedule() {
	keys := util.GetKeys(p.held)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	p.debounced(func() {
		p.print(keys)
	})
}

func (p *livePreview) print(keys []uint8) {
	measure := score.FromHeldNotes(keys)
	tokens, _, err := remi.EncodeMeasure(measure, constants.StepsPerQuarter)
	if err != nil {
		return
	}
	fmt.Fprintln(p.out, strings.Join(tokens, " "))
}

func listen() {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI input port")
		return
	}

	preview := newLivePreview(os.Stdout)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			preview.noteOn(key)
		case msg.GetNoteEnd(&ch, &key):
			preview.noteOff(key)
		default:
			// ignore
		}
	})

	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Second * 5000)
	stop()
}
