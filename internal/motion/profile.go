package motion

// Per-role kinematic constants. The ramp swings at moderate angular rates,
// the door snaps open and shut as fast as the drive allows, and the catcher
// runs linear-motion rates sized for the platform mass.
var roleKinematics = map[Role]Profile{
	RoleRamp:    {Velocity: 15, Accel: 30, Decel: 30, JerkPercent: 50},
	RoleDoor:    {Velocity: 360, Accel: 2000, Decel: 2000, JerkPercent: 0},
	RoleCatcher: {Velocity: 0.5, Accel: 2.0, Decel: 2.0, JerkPercent: 25},
}

// ProfileFor assembles the motion profile for one command: the fixed
// kinematic constants for the role combined with the caller's target
// position. Pure lookup, no side effects.
func ProfileFor(role Role, target float64) Profile {
	p, ok := roleKinematics[role]
	if !ok {
		// Unknown roles get the most conservative constants on the rig.
		p = roleKinematics[RoleCatcher]
	}
	p.Target = target
	return p
}
