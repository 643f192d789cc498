package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ResponseEvent is the record the grader keeps per answered question.
type ResponseEvent struct {
	ent.Schema
}

func (ResponseEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ResponseEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("submission_id").
			NotEmpty().
			Comment("Groups the answers of one lesson submission"),
		field.String("learner_id").
			Default("").
			Comment("Opaque learner reference, empty for anonymous checks"),
		field.Int("question_index").
			NonNegative().
			Comment("Position of the question within the submission"),
		field.String("question_type").
			NotEmpty().
			Comment("text, multiple-choice, multiple-answer, true-false or dropdown"),
		field.String("outcome").
			NotEmpty().
			Comment("correct, incorrect or ungradable"),
		field.Bool("is_correct"),
		field.Float("response_time_seconds").
			Default(0).
			Comment("Time the learner took to answer"),
	}
}

func (ResponseEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("submission_id"),
		index.Fields("learner_id"),
		index.Fields("outcome"),
	}
}
