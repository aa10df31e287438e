package store

const schema = `
-- Free-text questions.
CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    tags TEXT,
    last_reviewed DATE,
    interval INTEGER NOT NULL DEFAULT 1,
    ease_factor REAL NOT NULL DEFAULT 2.5
);

-- Coding challenges solved in an external editor.
CREATE TABLE IF NOT EXISTS challenges (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    testcases TEXT,
    language TEXT CHECK(language IN ('python', 'javascript', 'go')) NOT NULL,
    tags TEXT,
    last_reviewed DATE,
    interval INTEGER NOT NULL DEFAULT 1,
    ease_factor REAL NOT NULL DEFAULT 2.5
);

-- Multiple-choice and true/false questions.
CREATE TABLE IF NOT EXISTS mcq_questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question TEXT NOT NULL,
    question_type TEXT CHECK(question_type IN ('mcq', 'true_false')) NOT NULL DEFAULT 'mcq',
    option_a TEXT NOT NULL,
    option_b TEXT NOT NULL,
    option_c TEXT,
    option_d TEXT,
    correct_option TEXT CHECK(correct_option IN ('a', 'b', 'c', 'd')) NOT NULL,
    explanation_a TEXT,
    explanation_b TEXT,
    explanation_c TEXT,
    explanation_d TEXT,
    tags TEXT,
    last_reviewed DATE,
    interval INTEGER NOT NULL DEFAULT 1,
    ease_factor REAL NOT NULL DEFAULT 2.5
);

-- One row per applied review. Written in the same transaction as the
-- scheduling-field update.
CREATE TABLE IF NOT EXISTS review_log (
    id TEXT PRIMARY KEY,
    item_kind TEXT NOT NULL,
    item_id INTEGER NOT NULL,
    rating INTEGER,
    correct INTEGER,
    confidence TEXT,
    interval_before INTEGER NOT NULL,
    ease_before REAL NOT NULL,
    interval_after INTEGER NOT NULL,
    ease_after REAL NOT NULL,
    reviewed_at DATETIME NOT NULL
);

-- One row per remote grading / LLM API call.
CREATE TABLE IF NOT EXISTS llm_request_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    provider TEXT NOT NULL,
    model TEXT NOT NULL,
    purpose TEXT NOT NULL,
    input_tokens INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    latency_ms INTEGER NOT NULL DEFAULT 0,
    success INTEGER NOT NULL,
    error_message TEXT,
    request_body TEXT,
    response_body TEXT
);
`
