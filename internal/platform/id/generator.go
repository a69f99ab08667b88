package id

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// CodeGenerator creates short human-typeable codes such as mini-league join codes.
type CodeGenerator interface {
	NewCode(length int) (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// JoinCodeAlphabet leaves out 0/O and 1/I.
const JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const MinCodeLength = 6

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

func (g *RandomCodeGenerator) NewCode(length int) (string, error) {
	if length < MinCodeLength {
		length = MinCodeLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = JoinCodeAlphabet[int(b)%len(JoinCodeAlphabet)]
	}
	return string(out), nil
}
