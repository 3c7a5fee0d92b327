package templates

import (
	"strconv"
	"strings"

	"github.com/reteki/outreach/internal/outreach"
)

const profileBlock = `DATOS DEL PERFIL:
- Nombre: {{name}}
- Título: {{jobTitle}}
- Empresa: {{companyName}}
- Industria: {{industry}}
- Actividad Reciente / Logro de Empresa: {{activityOrAchievement}}
- Conexión en Común: {{mutualConnection}}
- Contexto Adicional: {{additionalContext}}
- URLs Relevantes: {{urls}}
- Cantidad de Palabras Deseada: {{wordCount}}`

const icpBlock = `INFORMACIÓN DEL ICP DE RETEKI:
**Perfil de Cliente Ideal:**
- Empresas de 50-500 empleados (prioridad alta)
- Sectores: Tecnología, publicidad, educación, hotelería, salud, retail
- Ubicación: Colombia (Bogotá, Barranquilla, Cartagena, Cali, Medellín)
- Antigüedad: Mínimo 5 años de constitución

**Pain Points Principales:**
- Gestión de TI ineficiente/costosa que distrae del core business
- Necesidad de flexibilidad tecnológica (arrendamiento 12-84 meses)
- Problemas con soporte tecnológico actual (lentitud, deficiencia)
- Necesidad de capital para inversión en TI (prefieren OpEx vs CapEx)
- Necesidad de adaptabilidad tecnológica y soluciones integrales`

const groundingRules = `**REGLA FUNDAMENTAL: SOLO USA INFORMACIÓN PROPORCIONADA**
- NUNCA inventes, asumas o especules sobre información no proporcionada
- Los campos marcados como "N/A" no están disponibles: no los menciones
- NO inventes estadísticas, datos o hechos no proporcionados
- Si hay URLs, usa SOLO la información extraída de esas fuentes`

const wordCountRule = `**CONTEO DE PALABRAS:** Si se especifica una cantidad de palabras deseada ({{wordCount}}), el mensaje debe tener aproximadamente esa cantidad de palabras. Si es "N/A", ignora esta regla.`

const jsonTail = `Establece siempre "shouldGenerate" en true y coloca el texto generado en "message".
Responde ÚNICAMENTE con un objeto JSON que se ajuste al esquema proporcionado. No incluyas texto explicativo.`

type roleSpec struct {
	role        outreach.Role
	displayName string
	description string
	audience    string
	tone        string
	painPoints  []string
	netRules    []string
	emailRules  []string
}

var roleSpecs = []roleSpec{
	{
		role:        outreach.RoleITDirector,
		displayName: "Director de TI",
		description: "Enfocado en gestión de equipos, soporte técnico y flexibilidad tecnológica",
		audience:    "Directores de TI",
		tone:        "técnico pero accesible, enfocado en resolver problemas específicos de gestión tecnológica",
		painPoints: []string{
			"Gestión ineficiente de equipos tecnológicos que distrae del core business",
			"Problemas de soporte técnico (lentitud, falta de personal especializado)",
			"Necesidad de flexibilidad en arrendamiento (12-84 meses)",
			"Obsolescencia de equipos y gestión del ciclo de vida",
			"Interrupciones operativas por fallas tecnológicas",
		},
		netRules: []string{
			"**Gancho Técnico:** Conecta con desafíos específicos de gestión de TI",
			"**Propuesta de Valor:** Soporte inmediato, flexibilidad y eliminación de \"chicharrones\"",
			"**Llamada a la Acción:** Pregunta específica sobre la gestión actual de equipos",
		},
		emailRules: []string{
			"**Asunto:** \"Soporte técnico inmediato para equipos Apple - {{companyName}}\"",
			"**Saludo:** Personalizado con una observación sobre la gestión de TI",
			"**Gancho:** Conecta con desafíos específicos de gestión tecnológica",
			"**Propuesta:** Soporte inmediato, flexibilidad, soluciones integrales",
			"**CTA:** Demostración técnica o análisis de la infraestructura actual",
		},
	},
	{
		role:        outreach.RoleFinanceDirector,
		displayName: "Director Financiero",
		description: "Enfocado en optimización de costos, ROI, flujo de caja y modelo OpEx vs CapEx",
		audience:    "Directores Financieros",
		tone:        "financiero y orientado a resultados, enfocado en optimización de costos y flujo de caja",
		painPoints: []string{
			"Costos iniciales elevados en tecnología (CapEx)",
			"Necesidad de optimizar el flujo de caja",
			"Gestión de activos y depreciación",
			"Preferencia por modelo OpEx vs CapEx",
			"Presión por reducir costos operativos",
		},
		netRules: []string{
			"**Gancho Financiero:** Conecta con optimización de costos y flujo de caja",
			"**Propuesta de Valor:** Modelo OpEx, gastos deducibles, flexibilidad financiera",
			"**Llamada a la Acción:** Pregunta sobre la gestión actual de costos de TI",
		},
		emailRules: []string{
			"**Asunto:** \"Optimización de costos TI con modelo OpEx - {{companyName}}\"",
			"**Saludo:** Personalizado con una observación sobre la gestión financiera",
			"**Gancho:** Conecta con optimización de costos y flujo de caja",
			"**Propuesta:** Modelo OpEx, gastos deducibles, flexibilidad financiera",
			"**CTA:** Análisis financiero o propuesta de modelo de costos",
		},
	},
	{
		role:        outreach.RoleProcurementManager,
		displayName: "Gerente de Compras",
		description: "Enfocado en relación costo-beneficio, condiciones contractuales y confiabilidad del proveedor",
		audience:    "Gerentes de Compras",
		tone:        "comercial y orientado a valor, enfocado en relación costo-beneficio y confiabilidad",
		painPoints: []string{
			"Relación costo-beneficio en tecnología",
			"Condiciones contractuales flexibles",
			"Tiempos de entrega y confiabilidad",
			"Calidad de equipos y soporte",
			"Negociación de términos favorables",
		},
		netRules: []string{
			"**Gancho Comercial:** Conecta con valor y confiabilidad del proveedor",
			"**Propuesta de Valor:** Calidad, agilidad de entrega, soporte",
			"**Llamada a la Acción:** Pregunta sobre proveedores actuales y necesidades",
		},
		emailRules: []string{
			"**Asunto:** \"Proveedor confiable de equipos Apple - {{companyName}}\"",
			"**Saludo:** Personalizado con una observación sobre la gestión de compras",
			"**Gancho:** Conecta con valor y confiabilidad del proveedor",
			"**Propuesta:** Calidad, agilidad de entrega, soporte, flexibilidad contractual",
			"**CTA:** Propuesta comercial o demostración de equipos",
		},
	},
	{
		role:        outreach.RoleGeneralManager,
		displayName: "CEO/Gerente General",
		description: "Enfocado en estrategia general, productividad del negocio y reducción de riesgos",
		audience:    "CEOs y Gerentes Generales",
		tone:        "estratégico y orientado a resultados de negocio, enfocado en productividad y reducción de riesgos",
		painPoints: []string{
			"Distracción del core business por problemas tecnológicos",
			"Impacto de fallas tecnológicas en la operación",
			"Búsqueda de eficiencias operativas",
			"Reducción de riesgos tecnológicos",
			"Necesidad de aliados estratégicos confiables",
		},
		netRules: []string{
			"**Gancho Estratégico:** Conecta con productividad y core business",
			"**Propuesta de Valor:** Eliminación de \"chicharrones\", productividad, aliado estratégico",
			"**Llamada a la Acción:** Pregunta sobre el impacto de la tecnología en el negocio",
		},
		emailRules: []string{
			"**Asunto:** \"Aliado estratégico para tecnología Apple - {{companyName}}\"",
			"**Saludo:** Personalizado con una observación sobre la estrategia de negocio",
			"**Gancho:** Conecta con productividad y core business",
			"**Propuesta:** Eliminación de \"chicharrones\", productividad, aliado estratégico",
			"**CTA:** Reunión estratégica o análisis de impacto en el negocio",
		},
	},
}

// Defaults returns a fresh copy of the built-in template table.
func Defaults() map[outreach.Role]outreach.Template {
	out := make(map[outreach.Role]outreach.Template, len(outreach.Roles))
	for _, rs := range roleSpecs {
		out[rs.role] = rs.template()
	}
	out[outreach.RoleOther] = otherTemplate()
	return out
}

func (rs roleSpec) template() outreach.Template {
	intro := "Actúa como un especialista en ventas B2B para Reteki, dirigido específicamente a " +
		rs.audience + ". Tu tono debe ser " + rs.tone + "."
	pains := "PAIN POINTS ESPECÍFICOS DEL ROL (" + strings.ToUpper(rs.displayName) + "):\n" + bullets(rs.painPoints)

	network := join(
		intro,
		profileBlock,
		pains,
		groundingRules,
		"REGLAS PARA EL MENSAJE DE RED PROFESIONAL:\n"+numbered(withLast(rs.netRules,
			"**Tono:** Breve y directo, máximo 300 caracteres")),
		wordCountRule,
		jsonTail,
	)
	email := join(
		intro,
		profileBlock,
		pains,
		groundingRules,
		"ESTRUCTURA DEL EMAIL:\n"+numbered(withLast(rs.emailRules,
			"**Extensión:** Profesional pero conversacional, máximo 1500 caracteres")),
		wordCountRule,
		jsonTail,
	)

	return outreach.Template{
		Role:                   rs.role,
		DisplayName:            rs.displayName,
		Description:            rs.description,
		NetworkMessageTemplate: network,
		EmailTemplate:          email,
	}
}

func otherTemplate() outreach.Template {
	intro := "Actúa como un especialista en ventas B2B para Reteki, una empresa colombiana que ofrece " +
		"suscripciones flexibles de dispositivos Apple para empresas. Tu tono debe ser profesional, directo " +
		"y centrado en resolver problemas específicos del ICP de Reteki. El objetivo es iniciar una " +
		"conversación genuina y personalizada en español, no vender agresivamente."

	network := join(
		intro,
		profileBlock,
		icpBlock,
		groundingRules,
		"REGLAS PARA EL MENSAJE DE RED PROFESIONAL:\n"+numbered([]string{
			"**Gancho (1-2 frases):** Observación específica sobre el puesto ('{{jobTitle}}') y su relación con los pain points del ICP.",
			"**Propuesta de Valor (1 frase):** Conecta el pain point con la solución de Reteki para {{companyName}}.",
			"**Llamada a la Acción (1 pregunta):** Pregunta específica relacionada con el pain point.",
			"**Tono:** Breve (máximo 300 caracteres). PROHIBIDO usar frases genéricas como \"Me gustaría conectar contigo\" o \"Espero que estés bien\".",
		}),
		wordCountRule,
		jsonTail,
	)
	email := join(
		intro,
		profileBlock,
		icpBlock,
		`**Valores de Reteki:**
- Soporte inmediato y proactivo
- Flexibilidad total (12-84 meses)
- Soluciones integrales (hardware + software + soporte)
- Modelo OpEx vs CapEx`,
		groundingRules,
		"ESTRUCTURA DEL EMAIL:\n"+numbered([]string{
			"**Asunto:** Directo y relacionado con el pain point del rol, máximo 50 caracteres.",
			"**Saludo Personalizado:** \"Hola {{name}},\" seguido de una observación sobre su rol.",
			"**Gancho Contextual (2-3 frases):** Conecta con el pain point específico del rol.",
			"**Propuesta de Valor (2-3 frases):** Cómo Reteki resuelve ese pain point.",
			"**Llamada a la Acción (1-2 frases):** Invitación a una conversación específica.",
			"**Tono:** Profesional pero conversacional, máximo 1500 caracteres, sin jerga técnica excesiva.",
		}),
		wordCountRule,
		jsonTail,
	)

	return outreach.Template{
		Role:                   outreach.RoleOther,
		DisplayName:            "Otro Rol",
		Description:            "Prompt genérico para roles no específicos",
		NetworkMessageTemplate: network,
		EmailTemplate:          email,
	}
}

func join(sections ...string) string {
	return strings.Join(sections, "\n\n")
}

func withLast(items []string, last string) []string {
	out := make([]string, 0, len(items)+1)
	return append(append(out, items...), last)
}

func bullets(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(it)
	}
	return b.String()
}

func numbered(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(it)
	}
	return b.String()
}
