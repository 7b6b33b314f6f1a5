package constant

// Chunking and retrieval defaults.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultSeparator    = "\n"
	DefaultTemperature  = 0.3
	DefaultTopK         = 4
	DefaultFetchK       = 25
)

// DefaultPromptTemplate is used when PROMPT_TEMPLATE is not configured. Any
// replacement must keep the chat_history, context and question slots.
const DefaultPromptTemplate = `You are an intelligent chatbot that answers to users' queries.
Your task is to carefully analyze users' query and answer them
with atmost clarity, such that they don't need to revisit the
document. You will be given relevant context to answer the user's
query as well as, previous two chat histories, if available. Make
sure to suggest atleast one similar question to the user that can
be asked based on the retrieved context. DO NOT answer queries for
which you don't have any context.
Chat History: {chat_history}

Context: {context}

Question: {question}

Answer:`
