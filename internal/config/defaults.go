package config

import (
	_ "embed"
)

//go:embed defaults/bricks.yaml
var defaultBricksYAML []byte

// DefaultBricksConfig returns the built-in configuration.
// It is used when the embedded YAML cannot be parsed.
func DefaultBricksConfig() BricksConfig {
	return BricksConfig{
		Engine: EngineConfig{
			Rate:          120,
			ClockInterval: 1,
		},
		Playfield: PlayfieldConfig{
			Width:  500,
			Height: 700,
		},
		Board: BoardConfig{
			Columns:     4,
			BaseRows:    4,
			CellWidth:   100,
			CellHeight:  30,
			PaddingLeft: 50,
		},
		Paddle: PaddleConfig{
			Width:     130,
			Height:    30,
			X:         0,
			Y:         640,
			MoveSteps: 30,
			StepDelay: 4,
			SlowAfter: 20,
		},
		Ball: BallConfig{
			Radius: 10,
			VY:     1,
		},
		Rules: RulesConfig{
			Lives:          3,
			PowerUps:       5,
			VictoryLevel:   22,
			GoldDuration:   5000,
			GoldMultiplier: 3,
			BonusPoints:    3,
			BonusSize:      30,
		},
		Messages: append([]string(nil), storyLines...),
		Save: SaveConfig{
			Backend: "file",
			Path:    "~/.bricks/save.mdds",
			Slot:    "default",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBricksYAML
}

var storyLines = []string{
	"Where am I?",
	"Looks like I am gaining more power and growing as you destroy blocks, keep going!",
	"What is this place? Am I in London? I sense something is not right...",
	"It was an ILLUSION? We are under attack! Break more blocks so I can get stronger!",
	"The city is not safe anymore, we need to go to the airport as soon as possible",
	"The airport is not damaged yet! Lets hurry up!",
	"What is that red light? Is it the aliens... we need to board a plane FAST!!",
	"What is this green light? What is happening? HELPPPP",
	"What just happened? Am I at the north pole? Those are the aurora lights! They are so pretty!! I am here for a purpose, lets go into that building and investigate further",
	"Is that a rocket? I have never flown in one of those! Looks like the aliens are catching up, I guess there is a first for everything! :)",
	"Andddddd... LIFTOFF!!! THIS IS AMAZING!!!!",
	"Wait...Wait...Its too fast...Slow Down!!",
	"Did I just blackou... woah IS THAT EARTH???",
	"This is SO BEAUTIFUL!",
	"I guess we have passed the moon now... where is this rocket taking me?",
	"What was that flash...DID EARTH JUST EXPLODE?!?!?!?!",
	"I see another ship in space! That must be the culprit! Lets follow it...but out fuel is running out! Nooo it's getting away!",
	"Hey look there is another ship in space! It must be from the same fleet! Lets try to get on that one before it flies off too!",
	"That was close...we almost didn't make it. We are in a completely different galaxy now... Is this their home?",
	"We need to avenge our fallen planet, lets follow them into the portal!",
	"Is that....god? NONO IT CANT BE!! EVERYTHING WE BELIEVED IN WAS A LIE!!",
	"You have won my child, now rest in peace knowing your people have been avenged.",
}
