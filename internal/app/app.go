// Package app wires repositories, services and handlers together.
package app

import (
	"log/slog"

	"threadline/internal/domain/repositories"
	wsRepo "threadline/internal/domain/repositories/workspace"
	wsSvc "threadline/internal/domain/services/workspace"
	"threadline/internal/handler"
	"threadline/internal/repository/sqlstore"
	sqlWorkspace "threadline/internal/repository/sqlstore/workspace"
	"threadline/internal/service/workspace"
)

// Repositories holds the store-backed repositories
type Repositories struct {
	Folders       wsRepo.FolderRepository
	Conversations wsRepo.ConversationRepository
	Messages      wsRepo.MessageRepository
	Namespace     wsRepo.NamespaceRepository
	TxManager     repositories.TransactionManager
}

// NewRepositories creates every repository over one store
func NewRepositories(config *sqlstore.RepositoryConfig) *Repositories {
	return &Repositories{
		Folders:       sqlWorkspace.NewFolderRepository(config),
		Conversations: sqlWorkspace.NewConversationRepository(config),
		Messages:      sqlWorkspace.NewMessageRepository(config),
		Namespace:     sqlWorkspace.NewNamespaceRepository(config),
		TxManager:     sqlstore.NewTransactionManager(config),
	}
}

// Services holds the business services
type Services struct {
	Folders       wsSvc.FolderService
	Conversations wsSvc.ConversationService
	Messages      wsSvc.MessageService
	Search        wsSvc.SearchService
	Tree          wsSvc.TreeService
	Archive       wsSvc.ArchiveService
}

// NewServices creates the services over repos
func NewServices(repos *Repositories, logger *slog.Logger) *Services {
	namespace := workspace.NewPathNamespace(repos.Namespace)
	cascade := workspace.NewCascadeRewriter(repos.Folders, repos.Conversations, repos.Messages, logger)

	folders := workspace.NewFolderService(repos.Folders, repos.Conversations, repos.Messages, namespace, cascade, repos.TxManager, logger)
	conversations := workspace.NewConversationService(repos.Conversations, repos.Folders, repos.Messages, namespace, repos.TxManager, logger)
	messages := workspace.NewMessageService(repos.Messages, repos.Conversations, repos.TxManager, logger)

	return &Services{
		Folders:       folders,
		Conversations: conversations,
		Messages:      messages,
		Search:        workspace.NewSearchService(repos.Conversations, repos.Folders, logger),
		Tree:          workspace.NewTreeService(repos.Folders, repos.Conversations, logger),
		Archive:       workspace.NewArchiveService(conversations, messages, repos.TxManager, logger),
	}
}

// NewHandlers creates the HTTP handlers over svcs
func NewHandlers(config *sqlstore.RepositoryConfig, svcs *Services, logger *slog.Logger) *handler.Handlers {
	return &handler.Handlers{
		Health:        handler.NewHealthHandler(config.DB),
		Tree:          handler.NewTreeHandler(svcs.Tree, logger),
		Folders:       handler.NewFolderHandler(svcs.Folders, svcs.Search, logger),
		Conversations: handler.NewConversationHandler(svcs.Conversations, svcs.Search, svcs.Archive, logger),
		Messages:      handler.NewMessageHandler(svcs.Messages, logger),
	}
}
