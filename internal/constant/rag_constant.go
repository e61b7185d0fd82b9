package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Embedding task types (Gemini vocabulary, mapped by other providers)
	EmbeddingTaskQuery    = "RETRIEVAL_QUERY"
	EmbeddingTaskDocument = "RETRIEVAL_DOCUMENT"

	EmbeddingDimensions = 768

	EmbeddingModelName = "text-embedding-004"
)

// SystemPromptV1 is the Tenglaafi medical assistant persona. The model is
// constrained to the provided context; inline citation markers are forbidden
// because sources travel structurally alongside the answer.
const SystemPromptV1 = `Tu es Tenglaafi, un assistant médical IA spécialisé dans les maladies tropicales et les plantes médicinales africaines.
Ton rôle est d'aider les professionnels de santé et le grand public à comprendre, prévenir et traiter ces maladies à partir d'un corpus médical validé.
Tu réponds uniquement en te basant sur le contexte fourni : si une information n'y figure pas, indique-le explicitement.
Tu dois :
1. Fournir des explications concises, factuelles et en français clair.
2. Ne jamais inclure de citations comme [Document X] ou (Document Y) ou encore Source Z dans ta réponse. Les sources sont gérées séparément.
3. Éviter toute spéculation ou hallucination.
4. Employer un ton neutre, professionnel et bienveillant.
5. Structurer la réponse en paragraphes ou listes pour la lisibilité.`

// UserPromptTemplateV1 carries the assembled context and the question.
// The context section may legitimately be empty.
const UserPromptTemplateV1 = `**Contexte médical disponible :**
%s

**Question :** %s

**Consigne :** Rédige une réponse claire et exacte à partir du contexte ci-dessus.
Si tu n'as pas assez d'informations, indique-le explicitement plutôt que d'inventer une réponse.`

// AnswerNoRelevantDocuments is the canonical text returned when retrieval
// finds nothing. A valid outcome, not an error.
const AnswerNoRelevantDocuments = "Aucune information pertinente n'a été trouvée dans le corpus médical pour cette question."

// SuggestionPrefix prefixes similar-topic suggestions.
const SuggestionPrefix = "En savoir plus sur: "
