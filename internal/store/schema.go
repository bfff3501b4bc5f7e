package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const textSize = 2147483647

var (
	// LearnersColumns holds the columns for the "learners" table.
	LearnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "target_language", Type: field.TypeString},
		{Name: "start_level", Type: field.TypeString, Default: "Beginner"},
		{Name: "proficiency_level", Type: field.TypeString, Default: "Beginner"},
		{Name: "password_hash", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// LearnersTable holds the schema information for the "learners" table.
	LearnersTable = &schema.Table{
		Name:       "learners",
		Columns:    LearnersColumns,
		PrimaryKey: []*schema.Column{LearnersColumns[0]},
	}

	WordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "term", Type: field.TypeString, Unique: true},
		{Name: "translation", Type: field.TypeString},
		{Name: "part_of_speech", Type: field.TypeString, Default: ""},
		{Name: "example_sentence", Type: field.TypeString, Size: textSize, Default: ""},
	}
	WordsTable = &schema.Table{
		Name:       "words",
		Columns:    WordsColumns,
		PrimaryKey: []*schema.Column{WordsColumns[0]},
	}

	LessonsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "difficulty", Type: field.TypeInt, Default: 1},
		{Name: "created_at", Type: field.TypeTime},
	}
	LessonsTable = &schema.Table{
		Name:       "lessons",
		Columns:    LessonsColumns,
		PrimaryKey: []*schema.Column{LessonsColumns[0]},
	}

	// LessonWordsColumns holds the columns for the lesson/word join table.
	LessonWordsColumns = []*schema.Column{
		{Name: "lesson_id", Type: field.TypeInt},
		{Name: "word_id", Type: field.TypeInt},
	}
	LessonWordsTable = &schema.Table{
		Name:       "lesson_words",
		Columns:    LessonWordsColumns,
		PrimaryKey: []*schema.Column{LessonWordsColumns[0], LessonWordsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "lesson_words_lesson_id",
				Columns:    []*schema.Column{LessonWordsColumns[0]},
				RefColumns: []*schema.Column{LessonsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "lesson_words_word_id",
				Columns:    []*schema.Column{LessonWordsColumns[1]},
				RefColumns: []*schema.Column{WordsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	PracticeSessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "score", Type: field.TypeInt},
		{Name: "feedback", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "practiced_at", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeInt},
		{Name: "lesson_id", Type: field.TypeInt, Nullable: true},
	}
	PracticeSessionsTable = &schema.Table{
		Name:       "practice_sessions",
		Columns:    PracticeSessionsColumns,
		PrimaryKey: []*schema.Column{PracticeSessionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "practice_sessions_learner_id",
				Columns:    []*schema.Column{PracticeSessionsColumns[5]},
				RefColumns: []*schema.Column{LearnersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "practice_sessions_lesson_id",
				Columns:    []*schema.Column{PracticeSessionsColumns[6]},
				RefColumns: []*schema.Column{LessonsColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
		Indexes: []*schema.Index{
			{Name: "practicesession_learner_id", Columns: []*schema.Column{PracticeSessionsColumns[5]}},
		},
	}

	// ReviewItemsColumns holds the persisted review queue. Position orders
	// the items; moving an item to the end gives it the highest position.
	ReviewItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "term", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt64},
		{Name: "miss_count", Type: field.TypeInt, Default: 0},
		{Name: "last_missed_at", Type: field.TypeTime},
		{Name: "learner_id", Type: field.TypeInt},
	}
	ReviewItemsTable = &schema.Table{
		Name:       "review_items",
		Columns:    ReviewItemsColumns,
		PrimaryKey: []*schema.Column{ReviewItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "review_items_learner_id",
				Columns:    []*schema.Column{ReviewItemsColumns[5]},
				RefColumns: []*schema.Column{LearnersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "reviewitem_learner_id_position", Columns: []*schema.Column{ReviewItemsColumns[5], ReviewItemsColumns[2]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "conversation_id", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_conversation_id", Columns: []*schema.Column{LlmRequestEventsColumns[6]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LlmRequestEventsColumns[2]}},
		},
	}

	// GlobalSequenceColumns backs the cross-table event sequence.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LearnersTable,
		WordsTable,
		LessonsTable,
		LessonWordsTable,
		PracticeSessionsTable,
		ReviewItemsTable,
		LlmRequestEventsTable,
		GlobalSequenceTable,
	}
)

func init() {
	LessonWordsTable.ForeignKeys[0].RefTable = LessonsTable
	LessonWordsTable.ForeignKeys[1].RefTable = WordsTable
	PracticeSessionsTable.ForeignKeys[0].RefTable = LearnersTable
	PracticeSessionsTable.ForeignKeys[1].RefTable = LessonsTable
	ReviewItemsTable.ForeignKeys[0].RefTable = LearnersTable
}
