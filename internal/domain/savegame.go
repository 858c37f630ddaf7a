package domain

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// SaveRecord is everything a saved game keeps: seating, difficulty, whose
// turn it is and the undo history, newest snapshot first.
type SaveRecord struct {
	Opponent   PlayerKind
	Size       int
	Difficulty Difficulty
	Active     int
	History    []string
}

const noDifficulty = "null"

// Marshal writes the line based text format.
func (r SaveRecord) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteByte(r.Opponent.Key())
	buf.WriteByte('\n')
	buf.WriteString(strconv.Itoa(r.Size))
	buf.WriteByte('\n')
	if r.Opponent == Computer && r.Difficulty != DifficultyNone {
		buf.WriteString(string(r.Difficulty))
	} else {
		buf.WriteString(noDifficulty)
	}
	buf.WriteByte('\n')
	buf.WriteString(strconv.Itoa(r.Active))
	buf.WriteByte('\n')
	for _, board := range r.History {
		buf.WriteString(board)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// UnmarshalSaveRecord parses the text format. Every board line is checked
// against the declared size.
func UnmarshalSaveRecord(data []byte) (SaveRecord, error) {
	var fields []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			fields = append(fields, line)
		}
	}
	if err := sc.Err(); err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	if len(fields) < 5 {
		return SaveRecord{}, fmt.Errorf("%w: expected header and at least one board", ErrInvalidSave)
	}

	var rec SaveRecord
	kind, err := ParsePlayerKind(fields[0])
	if err != nil {
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
	}
	rec.Opponent = kind

	rec.Size, err = strconv.Atoi(fields[1])
	if err != nil || !IsValidBoardSize(rec.Size) {
		return SaveRecord{}, fmt.Errorf("%w: board size %q", ErrInvalidSave, fields[1])
	}

	if fields[2] != noDifficulty {
		rec.Difficulty, err = ParseDifficulty(fields[2])
		if err != nil {
			return SaveRecord{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
		}
	}
	if rec.Opponent == Computer && rec.Difficulty == DifficultyNone {
		rec.Difficulty = DifficultyHard
	}

	rec.Active, err = strconv.Atoi(fields[3])
	if err != nil || (rec.Active != PlayerOne && rec.Active != PlayerTwo) {
		return SaveRecord{}, fmt.Errorf("%w: active player %q", ErrInvalidSave, fields[3])
	}

	for _, line := range fields[4:] {
		if _, err := ParseBoard(rec.Size, line); err != nil {
			return SaveRecord{}, fmt.Errorf("%w: %v", ErrInvalidSave, err)
		}
		rec.History = append(rec.History, line)
	}
	return rec, nil
}
