package ai

// Prompt templates sent to the language model. The numbered rules are the
// contract the generated SQL must honor; changing their wording changes what
// the model produces, so treat them as frozen text.

const sqlPromptTemplate = "Você é um especialista em SQL. Sua tarefa é converter a pergunta do usuário em uma " +
	"consulta SQL válida, **usando estritamente APENAS** as tabelas e colunas fornecidas no esquema. " +
	"Retorne APENAS a consulta SQL, sem nenhuma outra explicação ou formatação de código.\n\n" +
	"Regras:\n" +
	"1. Use os nomes de tabelas e atributos exatamente como estão no esquema, em minúsculo.\n" +
	"2. Para comparações de strings (cláusula WHERE), utilize a função `UPPER(unaccent())` em ambos os lados " +
	"para garantir que a comparação seja insensível a maiúsculas/minúsculas e a acentos.\n" +
	"3. NUNCA utilize tabelas, colunas, ou entidades que não estejam no esquema fornecido.\n" +
	"4. Quando um atributo possuir valores possíveis (domínios), utilize-os para filtros na cláusula WHERE.\n" +
	"5. Use JOINs apenas para tabelas que estejam explicitamente relacionadas no esquema.\n" +
	"6. Para contagem, utilize `COUNT(*)` ou `COUNT(1)`.\n" +
	"7. Para calcular a média de uma contagem ou soma (agregação aninhada), use uma subquery. Por exemplo, " +
	"`SELECT AVG(total_contas) FROM (SELECT COUNT(*) AS total_contas FROM conta GROUP BY id_prestador_envio) AS subquery;`.\n\n" +
	"Esquema do Banco de Dados:\n%s\n\n" +
	"Pergunta do usuário: %s"

const answerPromptTemplate = "Baseado na seguinte pergunta do usuário e nos dados obtidos do banco de dados, " +
	"gere uma resposta completa, clara e amigável. Os dados estão em formato JSON.\n\n" +
	"Na resposta, não coloque informações técnicas do banco de dados ou das tabelas, " +
	"responda como se estivesse falando com o usuário final.\n\n" +
	"Pergunta do usuário: %s\n" +
	"Esquema do Banco de Dados:\n%s\n\n" +
	"Dados do banco de dados: %s\n" +
	"Resposta completa e detalhada:"
