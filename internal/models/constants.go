package models

const (
	// RefusalAnswer is the fixed string the model is instructed to return
	// for questions unrelated to car maintenance.
	RefusalAnswer = "I can't answer topic-unrelated questions."

	// EmphasisMarker is stripped from every answer before it reaches the
	// caller or the chat store.
	EmphasisMarker = "**"

	PassageSeparator = "\n\n"
)

var (
	AnswerPromptTemplate = `You are an expert AI assistant specializing in car maintenance. Answer the question using the provided data and your
existing knowledge about car issues, symptoms, causes, and solutions.

Context:
%s

Question:
%s

If an off-topic question is asked, you should answer "I can't answer topic-unrelated questions."
`
)
