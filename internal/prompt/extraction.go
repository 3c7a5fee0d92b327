package prompt

import "strings"

const extractionHeader = `Analiza el siguiente texto, que es el contenido de un perfil de LinkedIn. Tu tarea es extraer la siguiente información y devolverla en un formato JSON estricto, evaluando si el perfil se alinea con el ICP de Reteki.

TEXTO DEL PERFIL:
---
`

const extractionRules = `
---

ICP DE RETEKI (para validación):
- Empresas de 50-500 empleados (prioridad alta)
- Sectores: Tecnología, publicidad, educación, hotelería, salud, retail
- Ubicación: Colombia (Bogotá, Barranquilla, Cartagena, Cali, Medellín)
- Antigüedad: Mínimo 5 años de constitución
- Roles: Director de TI, Director Financiero, Gerente de Compras, CEO/Gerente General

REGLAS DE EXTRACCIÓN:
1.  **Nombre Completo:** Extrae el nombre completo de la persona.
2.  **Título del Puesto y Empresa:** Extrae el título del puesto actual y el nombre de la empresa actual.
3.  **Industria:** Infiere la industria de la empresa o del perfil.
4.  **Actividad Reciente o Logro:** Busca en la sección "Actividad" o en el texto general cualquier post, artículo compartido o comentario reciente. Si no hay, busca noticias sobre la empresa (ej. "Acme Corp announced..."). Resume el hallazgo más relevante en una frase. Si no encuentras nada, deja el campo vacío.
5.  **Conexión en Común:** Busca si se menciona una conexión en común (ej. "Shared connection: Juan Pérez"). Si no se menciona, deja el campo vacío.
6.  **Contexto Adicional:** Cualquier información adicional relevante que pueda ser útil para personalizar el mensaje, especialmente relacionada con pain points del ICP (gestión de TI, soporte tecnológico, flexibilidad, costos).
7.  **URLs:** Extrae todas las URLs que encuentres en el texto (artículos, posts, perfiles, etc.).

VALIDACIÓN DE ICP:
- Evalúa si el perfil parece alineado con el ICP de Reteki
- Si no hay información suficiente para determinar el alineamiento, incluye el perfil de todas formas
- Prioriza perfiles que mencionen gestión de TI, tecnología, soporte, flexibilidad, costos

Si no puedes encontrar un dato específico, devuelve una cadena vacía "" para ese campo en el JSON. No omitas campos y no inventes valores. Responde ÚNICAMENTE con el objeto JSON.`

// ExtractionPrompt builds the prompt that turns pasted profile text into
// structured fields. The text is embedded verbatim.
func ExtractionPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(extractionHeader) + len(text) + len(extractionRules))
	b.WriteString(extractionHeader)
	b.WriteString(strings.TrimSpace(text))
	b.WriteString(extractionRules)
	return b.String()
}
