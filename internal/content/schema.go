package content

// assessmentSchema is the structural contract for authored assessment
// documents. Shape-level checks live here; semantic checks (answer-key
// shape vs. question type, permutation validity) live in Config.Validate.
const assessmentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "title", "questions", "passing_score_percent"],
  "properties": {
    "id": { "type": "string", "minLength": 1 },
    "title": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "time_limit_minutes": { "type": "integer", "minimum": 1 },
    "passing_score_percent": { "type": "integer", "minimum": 0, "maximum": 100 },
    "shuffle_questions": { "type": "boolean" },
    "show_explanations": { "type": "boolean" },
    "allow_review": { "type": "boolean" },
    "max_attempts": { "type": "integer", "minimum": 1 },
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "type", "prompt", "correct_answer", "points"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "type": {
            "enum": ["single-choice", "multi-select", "ordering", "fill-blank", "scenario"]
          },
          "prompt": { "type": "string", "minLength": 1 },
          "options": {
            "type": "array",
            "items": { "type": "string" }
          },
          "correct_answer": {
            "oneOf": [
              { "type": "integer" },
              { "type": "array", "items": { "type": "integer" } },
              { "type": "string" }
            ]
          },
          "explanation": { "type": "string" },
          "difficulty": { "enum": ["easy", "medium", "hard"] },
          "points": { "type": "integer", "minimum": 1 }
        }
      }
    }
  }
}`
