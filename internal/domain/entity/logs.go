package entity

import "time"

// LogGroup representa um snapshot de um log group lido do CloudWatch Logs.
// RetentionInDays nil => "Never expire" (nenhuma política configurada).
type LogGroup struct {
	Name            string    `json:"name"`
	ARN             string    `json:"arn,omitempty"`
	RetentionInDays *int32    `json:"retention_in_days,omitempty"`
	StoredBytes     int64     `json:"stored_bytes"`
	CreationTime    time.Time `json:"creation_time,omitempty"`
}

// HasRetention reports whether a retention policy is set on the group.
func (lg LogGroup) HasRetention() bool {
	return lg.RetentionInDays != nil
}

// LogGroupPage é um lote retornado por uma chamada paginada de DescribeLogGroups.
type LogGroupPage struct {
	LogGroups []LogGroup
	NextToken *string
}

// HasNext reports whether the page carries a continuation cursor.
func (p LogGroupPage) HasNext() bool {
	return p.NextToken != nil && *p.NextToken != ""
}

// EnumerationResult agrega todas as páginas lidas, na ordem em que foram buscadas.
type EnumerationResult struct {
	LogGroups []LogGroup
	Pages     int
	// Truncated indica que o limite de páginas foi atingido com cursor pendente.
	Truncated bool
}
