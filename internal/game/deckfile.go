package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks" json:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name  string      `yaml:"name" json:"name"`
	Side  string      `yaml:"side" json:"side"`
	Cards []CardEntry `yaml:"cards" json:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name" json:"name"`
	Count int    `yaml:"count" json:"count"`
}

// Deck is a resolved deck list ready to seed a DeckManager.
type Deck struct {
	Name  string
	Side  Side
	Cards []*Card
}

const deckSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["decks"],
  "properties": {
    "decks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "side", "cards"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "side": {"enum": ["runner", "corp"]},
          "cards": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["name", "count"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "count": {"type": "integer", "minimum": 1}
              },
              "additionalProperties": false
            }
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var deckFileSchema = jsonschema.MustCompileString("decks.schema.json", deckSchema)

// ParseDecks validates raw deck YAML against the deck schema and decodes it.
func ParseDecks(data []byte) (DeckFile, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	// Round-trip through JSON so the validator sees JSON types.
	js, err := json.Marshal(raw)
	if err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	if err := deckFileSchema.Validate(doc); err != nil {
		return DeckFile{}, fmt.Errorf("invalid deck file: %w", err)
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return DeckFile{}, fmt.Errorf("parse deck YAML: %w", err)
	}
	return df, nil
}

// Resolve turns an entry into card definitions, rejecting unknown names and
// cards that belong to the other side.
func (e DeckEntry) Resolve() (Deck, error) {
	side, err := ParseSide(e.Side)
	if err != nil {
		return Deck{}, fmt.Errorf("deck %q: %w", e.Name, err)
	}
	deck := Deck{Name: e.Name, Side: side}
	for _, entry := range e.Cards {
		for i := 0; i < entry.Count; i++ {
			c, err := FindCard(entry.Name)
			if err != nil {
				return Deck{}, fmt.Errorf("deck %q: %w", e.Name, err)
			}
			if c.Side() != side {
				return Deck{}, fmt.Errorf("deck %q: %s is a %s card", e.Name, c.Name, c.Side())
			}
			deck.Cards = append(deck.Cards, c)
		}
	}
	return deck, nil
}

// LoadDecks reads and resolves every deck in a YAML file.
func LoadDecks(path string) ([]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	df, err := ParseDecks(data)
	if err != nil {
		return nil, err
	}
	decks := make([]Deck, 0, len(df.Decks))
	for _, e := range df.Decks {
		d, err := e.Resolve()
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) of the given side.
func DeckByNumber(path string, side Side, n int) (Deck, error) {
	decks, err := LoadDecks(path)
	if err != nil {
		return Deck{}, err
	}
	var ofSide []Deck
	for _, d := range decks {
		if d.Side == side {
			ofSide = append(ofSide, d)
		}
	}
	if n < 1 || n > len(ofSide) {
		return Deck{}, fmt.Errorf("%s deck %d not found (have %d decks)", side, n, len(ofSide))
	}
	return ofSide[n-1], nil
}
