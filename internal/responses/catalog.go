package responses

import "github.com/jonesrussell/north-cloud/email-classifier/internal/domain"

type template struct {
	subject string
	body    string
}

var catalog = map[domain.PatternType]template{
	domain.PatternStatusRequest: {
		subject: "Re: Atualização de Status - Solicitação em Andamento",
		body: `Prezado(a) Cliente,

Agradecemos seu contato solicitando atualização sobre o andamento de sua solicitação.

Informamos que sua demanda está sendo processada por nossa equipe especializada e encontra-se em fase de análise. Nossa previsão atual é de conclusão em até 48 horas úteis.

Assim que houver novas atualizações, entraremos em contato imediatamente através dos canais cadastrados.

Para acompanhar o status em tempo real, acesse nossa central do cliente ou utilize o número do protocolo fornecido.

Permanecemos à disposição para esclarecimentos adicionais.

Atenciosamente,
Equipe de Atendimento Especializado`,
	},
	domain.PatternDocumentSharing: {
		subject: "Re: Documentos Recebidos - Confirmação",
		body: `Prezado(a) Cliente,

Confirmamos o recebimento da documentação enviada em anexo.

Nossa equipe iniciará a análise dos documentos nas próximas 24 horas úteis. Caso seja necessário algum documento adicional ou esclarecimento, entraremos em contato através dos canais cadastrados.

Prazo estimado para análise completa: 2 a 3 dias úteis.

Agradecemos pela colaboração e pontualidade no envio das informações solicitadas.

Atenciosamente,
Departamento de Análise Documental`,
	},
	domain.PatternTechnicalSupport: {
		subject: "Re: Suporte Técnico - Atendimento Prioritário",
		body: `Prezado(a) Cliente,

Recebemos sua solicitação de suporte técnico e classificamos como PRIORIDADE ALTA.

Nossa equipe técnica especializada foi notificada e iniciará o diagnóstico imediatamente.

Ações já tomadas:
• Ticket técnico foi aberto
• Equipe de TI foi acionada
• Monitoramento ativo iniciado

Previsão de resolução: até 4 horas úteis
Você receberá atualizações a cada 2 horas até a completa resolução.

Para urgências críticas, utilize nosso canal de suporte 24h.

Atenciosamente,
Central de Suporte Técnico`,
	},
	domain.PatternFinancialInquiry: {
		subject: "Re: Esclarecimentos Financeiros",
		body: `Prezado(a) Cliente,

Recebemos sua consulta sobre questões financeiras relacionadas à sua conta.

Para fornecer informações precisas e atualizadas sobre sua situação, nossa equipe especializada realizará uma análise detalhada de sua conta.

Prazo para resposta completa: até 24 horas úteis

Os esclarecimentos serão enviados através de canal seguro para o e-mail cadastrado.

Para consultas urgentes, recomendamos acesso ao Internet Banking ou contato através dos canais oficiais.

Atenciosamente,
Departamento Financeiro`,
	},
	domain.PatternCaseFollowUp: {
		subject: "Re: Acompanhamento de Protocolo",
		body: `Prezado(a) Cliente,

Agradecemos seu contato para acompanhamento do protocolo em questão.

Status atual: EM PROCESSAMENTO
Tempo estimado restante: 24-48h úteis

Nossa equipe está trabalhando na resolução de sua demanda com máxima atenção aos detalhes.

Você receberá notificação automática assim que houver alteração no status ou quando a solicitação for concluída.

Para consultas sobre este protocolo, sempre mencione o número de referência.

Atenciosamente,
Central de Acompanhamento`,
	},
	domain.PatternGreetings: {
		subject: "Re: Agradecemos suas Felicitações",
		body: `Prezado(a) Cliente,

Agradecemos suas cordiais felicitações!

É muito gratificante receber mensagens como a sua, que demonstram a parceria e confiança em nossos serviços.

Aproveitamos para reafirmar nosso compromisso em continuar oferecendo excelência no atendimento.

Desejamos a você e sua família momentos de muita alegria e prosperidade.

Cordialmente,
Equipe de Relacionamento`,
	},
	domain.PatternGratitude: {
		subject: "Re: Agradecemos seu Feedback",
		body: `Prezado(a) Cliente,

Ficamos muito felizes em receber seu agradecimento!

Seu reconhecimento é fundamental para nossa equipe e nos motiva a continuar buscando sempre a excelência em nossos serviços.

É uma satisfação poder atendê-lo(a) e contribuir positivamente para suas necessidades.

Permanecemos sempre à disposição para futuros atendimentos.

Cordialmente,
Equipe de Atendimento`,
	},
	domain.PatternSocialChat: {
		subject: "Re: Sua Mensagem",
		body: `Olá!

Agradecemos seu contato e cordialidade.

Ficamos à disposição para ajudá-lo(a) com qualquer necessidade relacionada aos nossos serviços.

Tenha um excelente dia!

Atenciosamente,
Equipe de Atendimento`,
	},
	domain.PatternGeneralProductive: {
		subject: "Re: Sua Solicitação Foi Recebida",
		body: `Prezado(a) Cliente,

Agradecemos seu contato conosco.

Sua mensagem foi recebida e será analisada por nossa equipe competente dentro de 24 horas úteis.

Caso sua solicitação seja urgente, recomendamos contato através de nossos canais prioritários.

Retornaremos com uma resposta completa assim que a análise for concluída.

Atenciosamente,
Central de Atendimento`,
	},
	domain.PatternGeneralUnproductive: {
		subject: "Re: Sua Mensagem Foi Recebida",
		body: `Olá!

Agradecemos seu contato.

Ficamos à disposição para ajudá-lo(a) com qualquer necessidade futura.

Atenciosamente,
Equipe de Atendimento`,
	},
	domain.PatternIrrelevant: {
		subject: "Re: Mensagem Recebida",
		body: `Olá!

Recebemos sua mensagem, mas não identificamos nela uma solicitação para nossa equipe.

Caso precise de atendimento, responda a este e-mail descrevendo sua necessidade.

Atenciosamente,
Equipe de Atendimento`,
	},
	domain.PatternLanguageError: {
		subject: "Re: Mensagem Recebida",
		body: `Prezado(a) Cliente,

Sua mensagem foi recebida.

Para melhor processamento, solicitamos que envie sua mensagem em português.

Atenciosamente,
Equipe de Atendimento`,
	},
	domain.PatternEmptyContent: {
		subject: "Re: Conteúdo Vazio",
		body: `Prezado(a) Cliente,

Recebemos sua mensagem, porém o conteúdo não foi identificado.

Por favor, reenvie sua solicitação com o conteúdo completo.

Atenciosamente,
Equipe de Atendimento`,
	},
}
