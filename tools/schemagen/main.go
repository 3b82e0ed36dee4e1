// Command schemagen emits JSON Schemas for the wire message payloads so
// the server side can contract-check its encoder against this client.
//
// Usage: schemagen [-out dir]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/gridfire/client/protocol"
)

type namedSchema struct {
	name string
	data []byte
}

// buildSchemas reflects every wire payload into its schema document, in
// name order. The output is deterministic for a fixed message set.
func buildSchemas() ([]namedSchema, error) {
	payloads := map[string]any{
		"envelope":       protocol.Envelope{},
		"room_joined":    protocol.RoomJoined{},
		"player_move":    protocol.PlayerMove{},
		"weapon_state":   protocol.WeaponState{},
		"shoot_failed":   protocol.ShootFailed{},
		"player_death":   protocol.PlayerDeath{},
		"player_respawn": protocol.PlayerRespawn{},
		"player_leave":   protocol.PlayerLeave{},
		"player_input":   protocol.PlayerInput{},
		"player_shoot":   protocol.PlayerShoot{},
	}

	names := make([]string, 0, len(payloads))
	for name := range payloads {
		names = append(names, name)
	}
	sort.Strings(names)

	reflector := &jsonschema.Reflector{}
	schemas := make([]namedSchema, 0, len(names))
	for _, name := range names {
		schema := reflector.Reflect(payloads[name])
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", name, err)
		}
		schemas = append(schemas, namedSchema{name: name, data: data})
	}
	return schemas, nil
}

func main() {
	out := flag.String("out", "", "directory to write schema files to (default: stdout)")
	flag.Parse()

	schemas, err := buildSchemas()
	if err != nil {
		log.Fatal(err)
	}

	for _, s := range schemas {
		if *out == "" {
			fmt.Printf("// %s\n%s\n", s.name, s.data)
			continue
		}
		path := filepath.Join(*out, s.name+".schema.json")
		if err := os.WriteFile(path, append(s.data, '\n'), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
	}
}
