// Command nescore is a headless host for the emulator core: it loads an
// iNES ROM, optionally drives controller 1 from a scripted input file, runs
// a fixed number of frames, and writes the final frame out as a PPM image
// — proof the core's frame buffer and palette path work end to end without
// pulling in a GUI dependency.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lonedot/nescore/pkg/cartridge"
	"github.com/lonedot/nescore/pkg/logger"
	"github.com/lonedot/nescore/pkg/system"
)

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM file")
	framesWanted := flag.Int("frames", 60, "number of frames to run")
	inputPath := flag.String("input", "", "optional scripted input file, one controller-1 button-mask byte per frame")
	outPath := flag.String("out", "frame.ppm", "path to write the final frame as a PPM (P6) image")
	logLevel := flag.String("log-level", "off", "off|error|warn|info|debug|trace")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nescore -rom <file.nes> [-frames N] [-input script] [-out frame.ppm]")
		os.Exit(1)
	}

	if err := logger.Initialize(logger.GetLogLevelFromString(*logLevel), ""); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	romFile, err := os.Open(*romPath)
	if err != nil {
		log.Fatalf("failed to open ROM: %v", err)
	}
	defer romFile.Close()

	cart, err := cartridge.LoadFromReader(romFile)
	if err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}

	var script []uint8
	if *inputPath != "" {
		script, err = loadScript(*inputPath)
		if err != nil {
			log.Fatalf("failed to load input script: %v", err)
		}
	}

	sys := system.New()
	sys.InsertCartridge(cart)
	sys.PowerOn()

	logger.LogInfo("running %s for %d frames\n", *romPath, *framesWanted)

	for frame := 0; frame < *framesWanted; frame++ {
		if frame < len(script) {
			applyButtonMask(sys, 0, script[frame])
		}
		sys.TickUntilVSync()
	}

	if err := writePPM(*outPath, sys.GetFrameBuffer(), 256, 240); err != nil {
		log.Fatalf("failed to write frame buffer: %v", err)
	}
	logger.LogInfo("wrote final frame to %s\n", *outPath)
}

// loadScript reads one button-mask byte per frame, LSB-first in the same
// A,B,Select,Start,Up,Down,Left,Right order pkg/input.Controller uses.
func loadScript(path string) ([]uint8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func applyButtonMask(sys *system.System, controller int, mask uint8) {
	for button := 0; button < 8; button++ {
		pressed := mask&(1<<uint(button)) != 0
		sys.SetButton(controller, button, pressed)
	}
}

// writePPM writes a packed-ARGB frame buffer out as a binary (P6) PPM,
// using only buffered stdlib byte writes — no image/png dependency.
func writePPM(path string, pixels []uint32, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	rgb := make([]byte, 3)
	for _, px := range pixels {
		rgb[0] = byte(px >> 16)
		rgb[1] = byte(px >> 8)
		rgb[2] = byte(px)
		if _, err := w.Write(rgb); err != nil {
			return err
		}
	}
	return w.Flush()
}
