// Package idgen генерирует идентификаторы: числовые snowflake для пользователей
// и сортируемые по времени ksuid для заявок и анализов.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// Префиксы публичных идентификаторов.
const (
	PrefixDoctorRequest = "REQ"
	PrefixLabAnalysis   = "LAB"
)

// Generator выдает идентификаторы. Безопасен для конкурентного использования.
type Generator struct {
	node *snowflake.Node
}

// New создает генератор для узла nodeID (0..1023).
func New(nodeID int64) (*Generator, error) {
	const op = "idgen.New"
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Generator{node: node}, nil
}

// NewUserID возвращает новый snowflake-идентификатор пользователя.
func (g *Generator) NewUserID() int64 {
	return g.node.Generate().Int64()
}

// NewRequestID возвращает идентификатор вида PREFIX-<ksuid>.
func (g *Generator) NewRequestID(prefix string) string {
	return prefix + "-" + ksuid.New().String()
}
