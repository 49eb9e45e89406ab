package model

import "errors"

var (
	// ErrNotFound indica registro inexistente
	ErrNotFound = errors.New("registro não encontrado")

	// ErrNoEmail indica pendente sem e-mail de notificação
	ErrNoEmail = errors.New("no tiene correo configurado")

	// ErrNoPendingTasks indica cliente sem tarefas abertas
	ErrNoPendingTasks = errors.New("no hay tareas pendientes para este cliente")

	// ErrNoRecipients indica lista de destinatários vazia
	ErrNoRecipients = errors.New("no se especificaron destinatarios")

	// ErrInvalidDate indica data fora do formato AAAA-MM-DD
	ErrInvalidDate = errors.New("fecha inválida, use el formato AAAA-MM-DD")

	// ErrWeekend indica envio bloqueado em fim de semana
	ErrWeekend = errors.New("no se envían correos los fines de semana")

	// ErrEmptyDescription indica tarefa sem descrição
	ErrEmptyDescription = errors.New("la descripción es obligatoria")

	// ErrMailFailed indica falha no envio do e-mail
	ErrMailFailed = errors.New("error al enviar el correo")
)
