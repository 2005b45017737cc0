// ABOUTME: Static diagnostic decision trees for common vehicle issues
// ABOUTME: Five compiled-in trees, immutable for the lifetime of the process
package diagnostic

// Tree is a keyword-triggered bundle of follow-up questions and likely
// causes for one symptom category
type Tree struct {
	ID              string
	TriggerKeywords []string
	Questions       []string
	CommonCauses    []string
}

// Trees is the full diagnostic library in declaration order. Exposed for
// inspection and test tuning; callers must treat it as read-only.
var Trees = []Tree{
	{
		ID:              "engine_warning_light",
		TriggerKeywords: []string{"check engine", "engine light", "warning light", "dashboard light"},
		Questions: []string{
			"Is the light steady or flashing?",
			"Have you noticed any changes in engine performance?",
			"When did you first notice the light?",
			"Have you recently refueled?",
		},
		CommonCauses: []string{
			"Loose gas cap",
			"Oxygen sensor issue",
			"Catalytic converter problem",
			"Mass airflow sensor",
			"Spark plugs/ignition coils",
		},
	},
	{
		ID:              "brake_issues",
		TriggerKeywords: []string{"brake", "braking", "stopping", "pedal"},
		Questions: []string{
			"Do you hear squealing, grinding, or other noises when braking?",
			"Does the brake pedal feel soft, spongy, or does it go to the floor?",
			"Does the vehicle pull to one side when braking?",
			"Do you feel vibration in the steering wheel when braking?",
		},
		CommonCauses: []string{
			"Worn brake pads",
			"Warped brake rotors",
			"Low brake fluid",
			"Air in brake lines",
			"Stuck caliper",
		},
	},
	{
		ID:              "starting_problems",
		TriggerKeywords: []string{"start", "starting", "won't turn on", "dead", "click"},
		Questions: []string{
			"Does the engine crank but not start?",
			"Do you hear a clicking sound?",
			"Are the dashboard lights dim or flickering?",
			"Has the vehicle been sitting unused for a while?",
		},
		CommonCauses: []string{
			"Dead or weak battery",
			"Corroded battery terminals",
			"Faulty starter motor",
			"Fuel delivery issue",
			"Ignition switch problem",
		},
	},
	{
		ID:              "overheating",
		TriggerKeywords: []string{"overheat", "hot", "temperature", "steam", "coolant"},
		Questions: []string{
			"Is the temperature gauge in the red zone?",
			"Do you see steam or smell coolant?",
			"Is the AC working properly?",
			"When was the coolant last checked/changed?",
		},
		CommonCauses: []string{
			"Low coolant level",
			"Thermostat failure",
			"Water pump issue",
			"Radiator blockage",
			"Cooling fan malfunction",
		},
	},
	{
		ID:              "strange_noises",
		TriggerKeywords: []string{"noise", "sound", "squeal", "grind", "rattle", "clunk"},
		Questions: []string{
			"Where does the noise come from (front, rear, engine)?",
			"When does it occur (starting, driving, braking, turning)?",
			"How would you describe the sound (squealing, grinding, clunking, rattling)?",
			"Does it happen at certain speeds?",
		},
		CommonCauses: []string{
			"Worn belts",
			"Suspension components",
			"Exhaust system",
			"Wheel bearings",
			"CV joints",
		},
	},
}

// TreeByID looks up a tree by its identifier
func TreeByID(id string) (Tree, bool) {
	for _, tree := range Trees {
		if tree.ID == id {
			return tree, true
		}
	}
	return Tree{}, false
}
