// Command iocheck is a bench diagnostic for the drive bridge: it reads both
// gate sensors and pulses each axis amplifier so wiring can be verified
// before a run.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gantrylab/catchpoint/internal/drivelink"
	"github.com/gantrylab/catchpoint/internal/motion"
)

var (
	port = flag.String("port", "/dev/ttyACM0", "Serial port for the drive bridge")
	baud = flag.Int("baud", 115200, "Baud rate")
)

func main() {
	flag.Parse()

	opts := drivelink.DefaultPortOptions()
	opts.BaudRate = *baud
	link, err := drivelink.Open(*port, opts)
	if err != nil {
		log.Fatalf("failed to open drive bridge at %s: %v", *port, err)
	}
	defer link.Close()

	for _, ch := range []int{1, 2} {
		v, err := link.Input(ch).Read()
		if err != nil {
			log.Printf("gate %d: read failed: %v", ch, err)
			continue
		}
		log.Printf("gate %d: %v", ch, v)
	}

	for _, role := range []motion.Role{motion.RoleRamp, motion.RoleDoor, motion.RoleCatcher} {
		axis := motion.AxisID(role)
		if err := link.SetEnabled(axis, true); err != nil {
			log.Printf("%s axis enable failed: %v", role, err)
			continue
		}
		time.Sleep(200 * time.Millisecond)
		if err := link.SetEnabled(axis, false); err != nil {
			log.Printf("%s axis disable failed: %v", role, err)
			continue
		}
		log.Printf("%s axis amplifier pulse ok", role)
	}
}
